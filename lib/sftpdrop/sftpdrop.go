// Package sftpdrop uploads exported CSV files to a drop directory on an
// SFTP server.
package sftpdrop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

type Config struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	// defaults to `/`
	RemoteDir string `json:"remote_dir"`
	// host keys are checked against this file unless InsecureIgnoreHostKey
	// is set
	KnownHostsFile        string `json:"known_hosts_file"`
	InsecureIgnoreHostKey bool   `json:"insecure_ignore_host_key"`
}

// Enabled reports whether a drop is configured at all.
func (c Config) Enabled() bool {
	return c.Host != ""
}

type Uploader struct {
	config Config
	dial   func(ctx context.Context) (*sftp.Client, io.Closer, error)
}

func New(config Config) (*Uploader, error) {
	if config.Host == "" || config.User == "" || config.Password == "" {
		return nil, fmt.Errorf("sftp: host, user and password are required")
	}
	if config.Port <= 0 {
		config.Port = 22
	}
	if config.RemoteDir == "" {
		config.RemoteDir = "/"
	}

	var hostKey ssh.HostKeyCallback
	switch {
	case config.InsecureIgnoreHostKey:
		hostKey = ssh.InsecureIgnoreHostKey()
	case config.KnownHostsFile != "":
		var err error
		hostKey, err = knownhosts.New(config.KnownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("sftp: known hosts: %w", err)
		}
	default:
		return nil, errors.New("sftp: known_hosts_file is required unless insecure_ignore_host_key is set")
	}

	sshConfig := &ssh.ClientConfig{
		User:            config.User,
		Auth:            []ssh.AuthMethod{ssh.Password(config.Password)},
		HostKeyCallback: hostKey,
		Timeout:         20 * time.Second,
	}
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)

	u := &Uploader{config: config}
	u.dial = func(ctx context.Context) (*sftp.Client, io.Closer, error) {
		return dialSftp(ctx, addr, sshConfig)
	}
	return u, nil
}

func dialSftp(ctx context.Context, addr string, sshConfig *ssh.ClientConfig) (*sftp.Client, io.Closer, error) {
	type dialResult struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialResult, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshConfig)
		ch <- dialResult{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		go func() {
			// release a connection that completes after cancellation
			r := <-ch
			if r.client != nil {
				r.client.Close()
			}
		}()
		return nil, nil, fmt.Errorf("sftp: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, nil, fmt.Errorf("sftp: dial: %w", r.err)
		}
		sshClient = r.client
	}

	client, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, nil, fmt.Errorf("sftp: new client: %w", err)
	}
	return client, sshClient, nil
}

// Upload copies the file at localPath into the remote directory under the
// same base name and returns the remote path.
func (u *Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	client, conn, err := u.dial(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()
	defer client.Close()

	return put(client, u.config.RemoteDir, localPath)
}

func put(client *sftp.Client, remoteDir, localPath string) (string, error) {
	err := client.MkdirAll(remoteDir)
	if err != nil {
		return "", fmt.Errorf("sftp: mkdir %s: %w", remoteDir, err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("sftp: open local file: %w", err)
	}
	defer src.Close()

	remotePath := path.Join(remoteDir, filepath.Base(localPath))
	dst, err := client.Create(remotePath)
	if err != nil {
		return "", fmt.Errorf("sftp: create remote file: %w", err)
	}
	_, err = io.Copy(dst, src)
	if err != nil {
		dst.Close()
		return "", fmt.Errorf("sftp: upload copy: %w", err)
	}
	err = dst.Close()
	if err != nil {
		return "", fmt.Errorf("sftp: close remote file: %w", err)
	}
	return remotePath, nil
}
