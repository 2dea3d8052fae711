package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	scp "github.com/bramvdbogaerde/go-scp"
	"github.com/mholtz/cabfetch/internal/config"
	"github.com/mholtz/cabfetch/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// connectTimeout bounds the SSH dial; transfers themselves have no deadline
const connectTimeout = 10 * time.Second

// Session manages one SSH connection to the appliance. It is not safe for
// concurrent use; the owner connects, runs its operations and disconnects.
type Session struct {
	host     string
	port     int
	username string
	password string

	basePath string

	client *ssh.Client
}

// NewSession creates an unconnected session from connection settings
func NewSession(cfg *config.Config) *Session {
	return &Session{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		basePath: cfg.ROMPath,
	}
}

// Connect establishes the SSH connection. On failure the session holds no
// connection and may be retried.
func (s *Session) Connect() error {
	sshConfig := &ssh.ClientConfig{
		User: s.username,
		Auth: []ssh.AuthMethod{
			ssh.Password(s.password),
		},
		// Appliances regenerate host keys on reinstall, so accept
		// whatever key the host presents.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         connectTimeout,
	}

	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	client, err := ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return &models.CabFetchError{
			Type: models.ErrConnection,
			Err:  fmt.Errorf("failed to connect to %s: %w", addr, err),
		}
	}

	s.client = client
	logrus.Infof("Connected to appliance at %s", s.host)
	return nil
}

// Connected reports whether the session holds a live connection
func (s *Session) Connected() bool {
	return s.client != nil
}

// BasePath returns the ROM directory root on the appliance
func (s *Session) BasePath() string {
	return s.basePath
}

// Execute runs a shell command on the appliance and returns its output and
// exit code. A non-zero exit code is not an error; err is only set for
// session or transport failures.
func (s *Session) Execute(command string) (stdout, stderr string, exitCode int, err error) {
	if s.client == nil {
		return "", "", 0, &models.CabFetchError{
			Type: models.ErrConnection,
			Err:  errors.New("not connected to appliance"),
		}
	}

	sess, err := s.client.NewSession()
	if err != nil {
		return "", "", 0, &models.CabFetchError{
			Type: models.ErrConnection,
			Err:  fmt.Errorf("failed to open session: %w", err),
		}
	}
	defer sess.Close()

	var outBuf, errBuf bytes.Buffer
	sess.Stdout = &outBuf
	sess.Stderr = &errBuf

	logrus.Debugf("Executing remote command: %s", command)
	runErr := sess.Run(command)

	stdout = outBuf.String()
	stderr = errBuf.String()

	if runErr != nil {
		var exitErr *ssh.ExitError
		if errors.As(runErr, &exitErr) {
			return stdout, stderr, exitErr.ExitStatus(), nil
		}
		return stdout, stderr, 0, &models.CabFetchError{
			Type: models.ErrRemoteCommand,
			Err:  fmt.Errorf("remote command failed: %w", runErr),
		}
	}

	return stdout, stderr, 0, nil
}

// EnsureDirectory creates the ROM directory for system if it does not exist
func (s *Session) EnsureDirectory(system string) error {
	path := s.basePath + "/" + system
	_, stderr, code, err := s.Execute(fmt.Sprintf("mkdir -p %s", path))
	if err != nil {
		return err
	}
	if code != 0 {
		return &models.CabFetchError{
			Type: models.ErrRemoteCommand,
			Item: path,
			Err:  fmt.Errorf("mkdir exited with %d: %s", code, strings.TrimSpace(stderr)),
		}
	}
	logrus.Debugf("Directory ready: %s", path)
	return nil
}

// ListSystems lists the ROM system directories available on the appliance
func (s *Session) ListSystems() ([]string, error) {
	stdout, stderr, code, err := s.Execute(fmt.Sprintf("ls -1 %s", s.basePath))
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return nil, &models.CabFetchError{
			Type: models.ErrRemoteCommand,
			Item: s.basePath,
			Err:  fmt.Errorf("ls exited with %d: %s", code, strings.TrimSpace(stderr)),
		}
	}

	var systems []string
	for _, line := range strings.Split(stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			systems = append(systems, line)
		}
	}
	return systems, nil
}

// CopyFile streams a local file to remotePath over SCP, emitting progress
// events through progress when non-nil
func (s *Session) CopyFile(ctx context.Context, localPath, remotePath string, progress models.ProgressFunc) error {
	if s.client == nil {
		return &models.CabFetchError{
			Type: models.ErrConnection,
			Err:  errors.New("not connected to appliance"),
		}
	}

	scpClient, err := scp.NewClientBySSH(s.client)
	if err != nil {
		return &models.CabFetchError{
			Type: models.ErrTransfer,
			Item: localPath,
			Err:  fmt.Errorf("failed to create scp session: %w", err),
		}
	}
	defer scpClient.Close()

	f, err := os.Open(localPath)
	if err != nil {
		return &models.CabFetchError{Type: models.ErrFileOp, Item: localPath, Err: err}
	}
	defer f.Close()

	name := filepath.Base(localPath)
	passThru := func(r io.Reader, total int64) io.Reader {
		return &progressReader{reader: r, name: name, total: total, progress: progress}
	}

	if err := scpClient.CopyFromFilePassThru(ctx, *f, remotePath, "0644", passThru); err != nil {
		return &models.CabFetchError{
			Type: models.ErrTransfer,
			Item: localPath,
			Err:  fmt.Errorf("scp to %s failed: %w", remotePath, err),
		}
	}

	logrus.Infof("Transferred: %s", name)
	return nil
}

// Disconnect closes the connection. Safe to call repeatedly or when never
// connected.
func (s *Session) Disconnect() {
	if s.client == nil {
		return
	}
	if err := s.client.Close(); err != nil {
		logrus.Warnf("Error closing connection: %v", err)
	}
	s.client = nil
	logrus.Info("Disconnected from appliance")
}
