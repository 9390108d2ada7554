package registrants

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ipca-wpd/backend/pkg/database"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed repository test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "docker.io/postgres:16-alpine",
			Env: map[string]string{
				"POSTGRES_USER":     "wpd",
				"POSTGRES_PASSWORD": "wpd",
				"POSTGRES_DB":       "wpd_test",
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres test container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("resolve postgres host: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("resolve postgres port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://wpd:wpd@%s/wpd_test?sslmode=disable",
		net.JoinHostPort(host, mappedPort.Port()))

	var pool *pgxpool.Pool
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err = pgxpool.New(ctx, dsn)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		if time.Now().After(deadline) {
			t.Fatalf("postgres never became reachable: %v", err)
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	return pool
}

func seedAdmin(t *testing.T, pool *pgxpool.Pool, email string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO admins (email, password_hash) VALUES ($1, $2) RETURNING id`,
		email, "x").Scan(&id)
	require.NoError(t, err)
	return id
}

func TestUpsert_ReregistrationPreservesVideoAndApproval(t *testing.T) {
	pool := newTestPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()
	adminID := seedAdmin(t, pool, "reviewer@example.com")

	reg, err := repo.Upsert(ctx, UpsertParams{
		Annotation: "Ms", Name: "Jane Doe", CompanyName: "Acme Pest Control",
		Email: "jane@example.com", Mobile: "9876543210", Passcode: "111111",
	})
	require.NoError(t, err)
	require.NoError(t, repo.MarkVerified(ctx, reg.ID))

	uploaded, err := repo.ReplaceVideo(ctx, reg.ID, "https://media.example.com/clip.mp4", "wpd_videos/x/clip.mp4")
	require.NoError(t, err)
	require.True(t, uploaded.HasVideo())

	require.NoError(t, repo.Approve(ctx, reg.ID, adminID))
	require.NoError(t, repo.SetCertificateURL(ctx, reg.ID, "https://media.example.com/cert.pdf"))

	// Registering again with the same email refreshes profile, passcode and
	// verification state only.
	again, err := repo.Upsert(ctx, UpsertParams{
		Annotation: "Dr", Name: "Jane A. Doe", CompanyName: "",
		Email: "jane@example.com", Mobile: "9999999999", Passcode: "222222",
	})
	require.NoError(t, err)

	assert.Equal(t, reg.ID, again.ID, "same row, not a new registrant")
	assert.Equal(t, "Jane A. Doe", again.Name)
	assert.Equal(t, "222222", again.Passcode)
	assert.False(t, again.IsVerified, "re-registration requires re-verification")

	require.NotNil(t, again.VideoURL)
	assert.Equal(t, "https://media.example.com/clip.mp4", *again.VideoURL)
	assert.True(t, again.IsApproved, "approval survives re-registration")
	require.NotNil(t, again.ApprovedBy)
	assert.Equal(t, adminID, *again.ApprovedBy)
	require.NotNil(t, again.CertificateURL)
	assert.Equal(t, "https://media.example.com/cert.pdf", *again.CertificateURL)
}

func TestReplaceVideo_RevokesApproval(t *testing.T) {
	pool := newTestPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()
	adminID := seedAdmin(t, pool, "reviewer@example.com")

	reg, err := repo.Upsert(ctx, UpsertParams{
		Annotation: "Mr", Name: "John Doe",
		Email: "john@example.com", Mobile: "123", Passcode: "123456",
	})
	require.NoError(t, err)

	_, err = repo.ReplaceVideo(ctx, reg.ID, "https://media.example.com/v1.mp4", "wpd_videos/x/v1.mp4")
	require.NoError(t, err)
	require.NoError(t, repo.Approve(ctx, reg.ID, adminID))
	require.NoError(t, repo.SetCertificateURL(ctx, reg.ID, "https://media.example.com/cert.pdf"))

	replaced, err := repo.ReplaceVideo(ctx, reg.ID, "https://media.example.com/v2.mp4", "wpd_videos/x/v2.mp4")
	require.NoError(t, err)

	require.NotNil(t, replaced.VideoURL)
	assert.Equal(t, "https://media.example.com/v2.mp4", *replaced.VideoURL)
	assert.False(t, replaced.IsApproved, "new video goes back through review")
	assert.Nil(t, replaced.ApprovedBy)
	assert.Nil(t, replaced.ApprovedAt)
	assert.Nil(t, replaced.CertificateURL)
	assert.Equal(t, "pending", string(replaced.Status))
}

func TestApprove_SecondApprovalKeepsOriginalApprover(t *testing.T) {
	pool := newTestPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()
	admin1 := seedAdmin(t, pool, "first@example.com")
	admin2 := seedAdmin(t, pool, "second@example.com")

	reg, err := repo.Upsert(ctx, UpsertParams{
		Annotation: "Mrs", Name: "Asha Rao",
		Email: "asha@example.com", Mobile: "456", Passcode: "654321",
	})
	require.NoError(t, err)

	require.NoError(t, repo.Approve(ctx, reg.ID, admin1))
	first, err := repo.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	require.True(t, first.IsApproved)
	require.NotNil(t, first.ApprovedAt)

	// A second approve call (certificate re-send) must not reassign the decision.
	require.NoError(t, repo.Approve(ctx, reg.ID, admin2))
	second, err := repo.GetByID(ctx, reg.ID)
	require.NoError(t, err)

	require.NotNil(t, second.ApprovedBy)
	assert.Equal(t, admin1, *second.ApprovedBy)
	assert.True(t, second.ApprovedAt.Equal(*first.ApprovedAt), "approval timestamp unchanged")
}

func TestListWithoutVideo_ExcludesSubmitted(t *testing.T) {
	pool := newTestPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	withVideo, err := repo.Upsert(ctx, UpsertParams{
		Annotation: "Mr", Name: "Uploaded",
		Email: "uploaded@example.com", Mobile: "1", Passcode: "100000",
	})
	require.NoError(t, err)
	_, err = repo.ReplaceVideo(ctx, withVideo.ID, "https://media.example.com/v.mp4", "wpd_videos/x/v.mp4")
	require.NoError(t, err)

	_, err = repo.Upsert(ctx, UpsertParams{
		Annotation: "Ms", Name: "Pending",
		Email: "pending@example.com", Mobile: "2", Passcode: "200000",
	})
	require.NoError(t, err)

	pending, err := repo.ListWithoutVideo(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "pending@example.com", pending[0].Email)

	subs, err := repo.ListSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "uploaded@example.com", subs[0].Email)
}
