//go:build container

package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPostgresLedger(t *testing.T) {
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgis/postgis:16-3.4",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "marine",
			"POSTGRES_PASSWORD": "marine",
			"POSTGRES_DB":       "marinetrack",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(2 * time.Minute),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := PostgresDSN(host, "marine", "marine", "marinetrack", "disable") + fmt.Sprintf(" port=%s", port.Port())
	l, err := OpenPostgres(dsn)
	require.NoError(t, err)
	defer l.Close()

	runLedgerSuite(t, l)
}
