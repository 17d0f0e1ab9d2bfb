package notify

import "context"

// MockHost records calls for tests.
type MockHost struct {
	PermissionDenied bool
	PermissionErr    error

	PermissionRequests int
	CancelAllCalls     int
	Scheduled          [][]Notification
}

func (m *MockHost) RequestPermission(_ context.Context) (bool, error) {
	m.PermissionRequests++
	if m.PermissionErr != nil {
		return false, m.PermissionErr
	}
	return !m.PermissionDenied, nil
}

func (m *MockHost) CancelAll(_ context.Context) error {
	m.CancelAllCalls++
	return nil
}

func (m *MockHost) ScheduleAll(_ context.Context, notifications []Notification) error {
	m.Scheduled = append(m.Scheduled, notifications)
	return nil
}

// LastScheduled returns the most recent schedule handed to the host.
func (m *MockHost) LastScheduled() []Notification {
	if len(m.Scheduled) == 0 {
		return nil
	}
	return m.Scheduled[len(m.Scheduled)-1]
}
