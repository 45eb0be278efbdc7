package devenv

// PostgresTestConfig points the postgres tests at an existing server
// instead of a throwaway container, read from `dev/.state/postgres.json5`.
type PostgresTestConfig struct {
	DSN      string `json:"dsn"`
	Password string `json:"password"`
}

// SftpTestConfig is read from `dev/.state/sftp.json5` by the dev
// environment setup to check the drop server is reachable.
type SftpTestConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	User      string `json:"user"`
	Password  string `json:"password"`
	RemoteDir string `json:"remote_dir"`
}
