package sftpdrop

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/sftp"
	"github.com/stretchr/testify/require"
)

type pipeConn struct {
	io.Reader
	io.WriteCloser
}

// memoryClient connects a client to an in-memory sftp server.
func memoryClient(t testing.TB) *sftp.Client {
	t.Helper()

	clientRead, serverWrite := io.Pipe()
	serverRead, clientWrite := io.Pipe()

	server := sftp.NewRequestServer(pipeConn{serverRead, serverWrite}, sftp.InMemHandler())
	go server.Serve()
	t.Cleanup(func() { server.Close() })

	client, err := sftp.NewClientPipe(clientRead, clientWrite)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestPut(t *testing.T) {
	local := filepath.Join(t.TempDir(), "reddit_technical_20240309_143005.csv")
	require.NoError(t, os.WriteFile(local, []byte("company_name\nAcme\n"), 0644))

	client := memoryClient(t)
	remote, err := put(client, "/drop/harvest", local)
	require.NoError(t, err)
	require.Equal(t, "/drop/harvest/reddit_technical_20240309_143005.csv", remote)

	f, err := client.Open(remote)
	require.NoError(t, err)
	defer f.Close()
	contents, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "company_name\nAcme\n", string(contents))
}

func TestPutMissingLocalFile(t *testing.T) {
	_, err := put(memoryClient(t), "/", filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorContains(t, err, "open local file")
}

func TestNewValidates(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)

	_, err = New(Config{Host: "h", User: "u", Password: "p"})
	require.ErrorContains(t, err, "known_hosts_file")

	u, err := New(Config{Host: "h", User: "u", Password: "p", InsecureIgnoreHostKey: true})
	require.NoError(t, err)
	require.Equal(t, 22, u.config.Port)
	require.Equal(t, "/", u.config.RemoteDir)
}

func TestUploadCancelled(t *testing.T) {
	u, err := New(Config{Host: "192.0.2.1", User: "u", Password: "p", InsecureIgnoreHostKey: true})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = u.Upload(ctx, "unused.csv")
	require.ErrorIs(t, err, context.Canceled)
}
