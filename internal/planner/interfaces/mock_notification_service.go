package interfaces

import "context"

type MockReminderReconciler struct {
	ReconcileCalls int
	err            error
}

func (m *MockReminderReconciler) Reconcile(_ context.Context) error {
	m.ReconcileCalls++
	return m.err
}
