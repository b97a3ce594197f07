package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/WTLInterns/hrm-cli/internal/client/client"
	"github.com/WTLInterns/hrm-cli/internal/client/models"
	"github.com/WTLInterns/hrm-cli/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelDebug)
}

// memRepo is an in-memory localstore.Repository.
type memRepo struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemRepo() *memRepo {
	return &memRepo{data: map[string][]byte{}}
}

func (m *memRepo) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *memRepo) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memRepo) SetMany(_ context.Context, entries map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, value := range entries {
		m.data[key] = append([]byte(nil), value...)
	}
	return nil
}

func (m *memRepo) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memRepo) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]byte{}
	return nil
}

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	mu sync.Mutex

	LoginPrincipal *models.Principal
	LoginToken     string
	LoginErr       error
	LoginCalls     int
	// LoginBlock, when non-nil, makes Login wait until the channel closes.
	// LoginEntered is closed when the first blocked call is inside Login.
	LoginBlock   chan struct{}
	LoginEntered chan struct{}

	RegisterPrincipal *models.Principal
	RegisterToken     string
	RegisterErr       error
	RegisterCalls     int

	ProfilePrincipal *models.Principal
	ProfileErr       error
	ProfileCalls     int
	LastProfileToken string

	// RequestResetErrs maps user type to the error returned for it.
	RequestResetErrs  map[models.ResetUserType]error
	RequestResetCalls []models.ResetUserType

	VerifyErr        error
	VerifyCalls      []models.ResetUserType
	LastVerifyEmail  string
	LastVerifyOTP    string
	LastVerifyNewPwd string

	EmployeesRet   []models.Employee
	EmployeesErr   error
	EmployeesCalls int
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*models.Principal, string, error) {
	f.mu.Lock()
	f.LoginCalls++
	entered := f.LoginEntered
	block := f.LoginBlock
	f.mu.Unlock()

	if entered != nil {
		close(entered)
		f.mu.Lock()
		f.LoginEntered = nil
		f.mu.Unlock()
	}
	if block != nil {
		<-block
	}
	return f.LoginPrincipal, f.LoginToken, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, req client.RegisterRequest) (*models.Principal, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RegisterCalls++
	return f.RegisterPrincipal, f.RegisterToken, f.RegisterErr
}

func (f *fakeClient) Profile(_ context.Context, token string) (*models.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ProfileCalls++
	f.LastProfileToken = token
	return f.ProfilePrincipal, f.ProfileErr
}

func (f *fakeClient) RequestPasswordReset(_ context.Context, userType models.ResetUserType, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RequestResetCalls = append(f.RequestResetCalls, userType)
	return f.RequestResetErrs[userType]
}

func (f *fakeClient) VerifyPasswordReset(_ context.Context, userType models.ResetUserType, email, otp, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.VerifyCalls = append(f.VerifyCalls, userType)
	f.LastVerifyEmail = email
	f.LastVerifyOTP = otp
	f.LastVerifyNewPwd = newPassword
	return f.VerifyErr
}

func (f *fakeClient) Employees(_ context.Context, token string) ([]models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.EmployeesCalls++
	return f.EmployeesRet, f.EmployeesErr
}
