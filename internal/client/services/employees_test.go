package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WTLInterns/hrm-cli/internal/client/client"
	"github.com/WTLInterns/hrm-cli/internal/client/models"
	"github.com/WTLInterns/hrm-cli/internal/client/repositories/localstore"
	"github.com/WTLInterns/hrm-cli/internal/client/session"
)

func newEmployeeFixture(t *testing.T, f *fakeClient) (*EmployeeService, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	sess := session.NewStore(context.Background(), repo, testLogger())
	require.NoError(t, sess.SetToken(context.Background(), "tok"))
	return NewEmployeeService(f, sess, repo, testLogger()), repo
}

func TestEmployeeList_FetchesAndCaches(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{EmployeesRet: []models.Employee{{ID: 1, FullName: "A"}}}
	svc, repo := newEmployeeFixture(t, f)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	cached, err := repo.Get(ctx, localstore.KeyEmployees)
	require.NoError(t, err)
	assert.Contains(t, string(cached), `"A"`)
}

func TestEmployeeList_ServesCacheWhenUnreachable(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{EmployeesRet: []models.Employee{{ID: 1, FullName: "A"}}}
	svc, _ := newEmployeeFixture(t, f)

	_, err := svc.List(ctx)
	require.NoError(t, err)

	f.EmployeesErr = client.ErrUnavailable
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].FullName)
}

func TestEmployeeList_AuthFailureNotMaskedByCache(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{EmployeesRet: []models.Employee{{ID: 1}}}
	svc, _ := newEmployeeFixture(t, f)

	_, err := svc.List(ctx)
	require.NoError(t, err)

	f.EmployeesErr = client.ErrUnauthorized
	_, err = svc.List(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestEmployeeList_NoCacheAndUnreachable(t *testing.T) {
	f := &fakeClient{EmployeesErr: client.ErrTimeout}
	svc, _ := newEmployeeFixture(t, f)

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, client.ErrTimeout)
}

func TestEmployeeList_CorruptedCacheDropped(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{EmployeesErr: client.ErrUnavailable}
	svc, repo := newEmployeeFixture(t, f)
	require.NoError(t, repo.Set(ctx, localstore.KeyEmployees, []byte(`{broken`)))

	_, err := svc.List(ctx)
	require.ErrorIs(t, err, client.ErrUnavailable)

	v, err := repo.Get(ctx, localstore.KeyEmployees)
	require.NoError(t, err)
	assert.Nil(t, v)
}
