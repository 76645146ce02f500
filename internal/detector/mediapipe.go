package detector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

const (
	// ServiceScript is the file name of the MediaPipe hand tracking service.
	ServiceScript = "mediapipe_service.py"
	// IdleShutdown is how long the service may sit unused before it is
	// stopped. The next Detect call restarts it.
	IdleShutdown = 30 * time.Second
	// JPEGQuality is the quality frames are encoded at for the service.
	JPEGQuality = 80
)

// ErrServiceNotFound is returned when the MediaPipe service script cannot be located.
var ErrServiceNotFound = errors.New(ServiceScript + " not found")

// MediaPipeDetector implements Detector on top of a Python MediaPipe
// subprocess. The process is started on the first Detect call and stopped
// after IdleShutdown without frames.
type MediaPipeDetector struct {
	config Config
	script string

	mu   sync.Mutex
	proc *service
	idle *time.Timer
}

// service is one running instance of the Python process.
type service struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   *bufio.Reader
}

// NewMediaPipeDetector locates the service script and returns a detector
// that will run it with the given configuration.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	script := findFirst(serviceCandidates())
	if script == "" {
		return nil, ErrServiceNotFound
	}
	return &MediaPipeDetector{config: config, script: script}, nil
}

// Detect sends the frame to the service and returns the hands it reports.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.proc == nil {
		proc, err := startService(d.script, d.config)
		if err != nil {
			return nil, err
		}
		d.proc = proc
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, *frame, []int{int(gocv.IMWriteJpegQuality), JPEGQuality})
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	if err := writeFrame(d.proc.stdin, buf.GetBytes()); err != nil {
		d.stop()
		return nil, err
	}
	hands, err := readReply(d.proc.out)
	if err != nil {
		d.stop()
		return nil, err
	}

	d.armIdle()
	return hands, nil
}

// Close stops the service if it is running.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stop()
}

// stop must be called with mu held.
func (d *MediaPipeDetector) stop() error {
	if d.idle != nil {
		d.idle.Stop()
		d.idle = nil
	}
	if d.proc == nil {
		return nil
	}
	err := d.proc.close()
	d.proc = nil
	return err
}

func (d *MediaPipeDetector) armIdle() {
	if d.idle != nil {
		d.idle.Reset(IdleShutdown)
		return
	}
	d.idle = time.AfterFunc(IdleShutdown, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.stop()
	})
}

func startService(script string, config Config) (*service, error) {
	python := findFirst(venvCandidates())
	if python == "" {
		python = "python3"
	}

	cmd := exec.Command(python, append([]string{script}, config.args()...)...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mediapipe service: %w", err)
	}

	return &service{cmd: cmd, stdin: stdin, out: bufio.NewReader(stdout)}, nil
}

// close ends the service by closing its input and waits for it to exit.
func (s *service) close() error {
	s.stdin.Close()
	return s.cmd.Wait()
}

// args renders the detector configuration as service command-line flags.
func (c Config) args() []string {
	return []string{
		"--max-hands", strconv.Itoa(c.MaxHands),
		"--min-detection-confidence", strconv.FormatFloat(c.MinConfidence, 'f', -1, 64),
		"--min-tracking-confidence", strconv.FormatFloat(c.MinTrackingConf, 'f', -1, 64),
	}
}

// homeDir is the per-user data directory, or "" when HOME is unknown.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".airkeys")
}

func execDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}

func serviceCandidates() []string {
	paths := []string{
		filepath.Join("scripts", ServiceScript),
		filepath.Join("..", "scripts", ServiceScript),
	}
	for _, dir := range []string{execDir(), homeDir()} {
		if dir != "" {
			paths = append(paths, filepath.Join(dir, "scripts", ServiceScript))
		}
	}
	return paths
}

func venvCandidates() []string {
	paths := []string{
		filepath.Join("venv", "bin", "python"),
		filepath.Join("..", "venv", "bin", "python"),
	}
	for _, dir := range []string{execDir(), homeDir()} {
		if dir != "" {
			paths = append(paths, filepath.Join(dir, "venv", "bin", "python"))
		}
	}
	return paths
}

// findFirst returns the absolute form of the first existing path.
func findFirst(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	}
	return ""
}
