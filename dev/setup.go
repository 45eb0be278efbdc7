package main

import (
	"context"
	"encoding/json"
	"fmt"
	devenv "interview-harvest/dev/env"
	"interview-harvest/lib/warehouse"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

func cmd(name string, args ...string) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	fullCmd := name
	for _, a := range args {
		fullCmd += " "
		fullCmd += a
	}

	fmt.Printf("$ %s\n", fullCmd)
	err := cmd.Run()
	if err != nil {
		os.Exit(1)
	}
}

func CreateLocalStack() error {
	err := os.Chdir("dev/local_stack")
	if err != nil {
		return err
	}
	cmd("docker", "compose", "up", "-d")
	return os.Chdir("../..")
}

// writeStateConfig writes value to dev/.state/name unless the file exists.
func writeStateConfig(name string, value any) error {
	path, err := devenv.ResolvePath(filepath.Join("<dev_state>", name))
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("config already present at", path)
		return nil
	}

	contents, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println("writing config to", path)
	return os.WriteFile(path, contents, 0666)
}

// WriteLocalStackConfigs points the tests at the containers started by
// dev/local_stack/docker-compose.yml.
func WriteLocalStackConfigs() error {
	err := writeStateConfig("postgres.json5", devenv.PostgresTestConfig{
		DSN:      "postgres://harvest@localhost:5432/harvest?sslmode=disable",
		Password: "harvest",
	})
	if err != nil {
		return err
	}
	return writeStateConfig("sftp.json5", devenv.SftpTestConfig{
		Host:      "localhost",
		Port:      2222,
		User:      "harvest",
		Password:  "harvest",
		RemoteDir: "/upload",
	})
}

func CreateWarehouse() error {
	ctx := context.Background()
	store, err := warehouse.Open(ctx, warehouse.Config{
		Driver: warehouse.DriverSqlite,
		File:   filepath.Join("<dev_state>", "warehouse.db"),
	})
	if err != nil {
		return err
	}
	defer store.Close()

	err = store.Setup(ctx)
	if err != nil {
		return err
	}
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("warehouse ready at dev/.state/warehouse.db (%d rows)\n", count)
	return nil
}

func PrintConfigLocations() {
	slog.Info("postgres tests read dev/.state/postgres.json5 when present and otherwise start a container, run with -local-stack to point them at dev/local_stack.")
}
