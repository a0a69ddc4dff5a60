// Package config loads render job files for the soft3d commands.
package config

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/importer"
)

// Defaults applied by normalize.
const (
	DefaultWidth      = 640
	DefaultHeight     = 480
	DefaultBackground = "#000000"
	DefaultBackend    = "png"
	DefaultOutputDir  = "frames"
	DefaultFrames     = 1
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid job")

// Job describes one render run: the scene, the camera, the device and
// where frames go.
type Job struct {
	Version int    `yaml:"version"`
	Scene   string `yaml:"scene,omitempty"`

	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FOV        float64 `yaml:"fov"`
	Near       float64 `yaml:"near"`
	Far        float64 `yaml:"far"`
	Background string  `yaml:"background"`
	Workers    int     `yaml:"workers,omitempty"`

	Camera Camera `yaml:"camera"`

	Frames *int     `yaml:"frames,omitempty"`
	FPS    int      `yaml:"fps,omitempty"`
	Spin   *float64 `yaml:"spin,omitempty"`
	HUD    bool     `yaml:"hud,omitempty"`

	Output Output `yaml:"output"`
}

// Camera places the scene camera.
type Camera struct {
	Position []float64 `yaml:"position,flow"`
	Target   []float64 `yaml:"target,flow"`
}

// Output selects the surface backend.
type Output struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir,omitempty"`
}

// Default returns a job with every default applied.
func Default() Job {
	var j Job
	j.normalize()
	return j
}

func (j *Job) normalize() {
	if j.Version == 0 {
		j.Version = 1
	}
	if j.Width == 0 {
		j.Width = DefaultWidth
	}
	if j.Height == 0 {
		j.Height = DefaultHeight
	}
	if j.FOV == 0 {
		j.FOV = soft3d.DefaultFOV
	}
	if j.Near == 0 {
		j.Near = soft3d.DefaultZNear
	}
	if j.Far == 0 {
		j.Far = soft3d.DefaultZFar
	}
	if j.Background == "" {
		j.Background = DefaultBackground
	}
	if j.Camera.Position == nil {
		j.Camera.Position = []float64{0, 0, 10}
	}
	if j.Camera.Target == nil {
		j.Camera.Target = []float64{0, 0, 0}
	}
	if j.Frames == nil {
		frames := DefaultFrames
		j.Frames = &frames
	}
	if j.Spin == nil {
		spin := 0.01
		j.Spin = &spin
	}
	if j.Output.Backend == "" {
		j.Output.Backend = DefaultBackend
	}
	if j.Output.Dir == "" {
		j.Output.Dir = DefaultOutputDir
	}
}

// Validate reports the first invalid field.
func (j *Job) Validate() error {
	switch {
	case j.Width <= 0 || j.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, j.Width, j.Height)
	case !(j.FOV > 0 && j.FOV < math.Pi):
		return fmt.Errorf("%w: fov %v not in (0, pi)", ErrInvalid, j.FOV)
	case !(j.Near > 0 && j.Far > j.Near):
		return fmt.Errorf("%w: near %v, far %v", ErrInvalid, j.Near, j.Far)
	case len(j.Camera.Position) != 3 || len(j.Camera.Target) != 3:
		return fmt.Errorf("%w: camera vectors need 3 components", ErrInvalid)
	case j.FrameCount() < 0:
		return fmt.Errorf("%w: frames %d", ErrInvalid, j.FrameCount())
	case j.FPS < 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, j.FPS)
	}
	if !validHex(j.Background) {
		return fmt.Errorf("%w: background %q is not a hex color", ErrInvalid, j.Background)
	}
	return nil
}

func validHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	_, err := strconv.ParseUint(s, 16, 32)
	return err == nil
}

// BackgroundColor returns the parsed background color.
func (j *Job) BackgroundColor() soft3d.Color4 {
	return soft3d.Hex(j.Background)
}

// NewCamera returns the job's camera. The job must be valid.
func (j *Job) NewCamera() *soft3d.Camera {
	return soft3d.NewCamera(
		soft3d.Vector3FromSlice(j.Camera.Position, 0),
		soft3d.Vector3FromSlice(j.Camera.Target, 0))
}

// DeviceOptions returns the device options described by the job.
func (j *Job) DeviceOptions() []soft3d.DeviceOption {
	return []soft3d.DeviceOption{
		soft3d.WithBackground(j.BackgroundColor()),
		soft3d.WithProjection(j.FOV, j.Near, j.Far),
		soft3d.WithWorkers(j.Workers),
	}
}

// Meshes loads the job's scene file, or returns a single 2-unit cube when
// the job names no scene.
func (j *Job) Meshes() ([]*soft3d.Mesh, error) {
	if j.Scene == "" {
		return []*soft3d.Mesh{soft3d.NewCube("Cube", 2)}, nil
	}
	return importer.ImportFile(j.Scene)
}

// FrameCount returns the number of frames to render. Zero renders until
// the run is interrupted.
func (j *Job) FrameCount() int {
	if j.Frames == nil {
		return DefaultFrames
	}
	return *j.Frames
}

// SpinPerFrame returns the per-frame Y rotation in radians.
func (j *Job) SpinPerFrame() float64 {
	if j.Spin == nil {
		return 0
	}
	return *j.Spin
}

// ApplyFlags overrides the job with every flag explicitly set on fs.
// Flags are matched by name: scene, width, height, frames, fps, workers,
// hud, output (the backend) and dir. Other flags are ignored.
func (j *Job) ApplyFlags(fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		g, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		switch v := g.Get().(type) {
		case int:
			switch f.Name {
			case "width":
				j.Width = v
			case "height":
				j.Height = v
			case "frames":
				j.Frames = &v
			case "fps":
				j.FPS = v
			case "workers":
				j.Workers = v
			}
		case bool:
			if f.Name == "hud" {
				j.HUD = v
			}
		case string:
			switch f.Name {
			case "scene":
				j.Scene = v
			case "output":
				j.Output.Backend = v
			case "dir":
				j.Output.Dir = v
			}
		}
	})
}

// Parse decodes a job, applies defaults and validates it.
func Parse(data []byte) (Job, error) {
	var j Job
	if err := yaml.Unmarshal(data, &j); err != nil {
		return Job{}, fmt.Errorf("config: parse: %w", err)
	}
	j.normalize()
	if err := j.Validate(); err != nil {
		return Job{}, err
	}
	return j, nil
}

// Load reads and parses the job file at path.
func Load(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	j, err := Parse(data)
	if err != nil {
		return Job{}, fmt.Errorf("%s: %w", path, err)
	}
	return j, nil
}

// Write saves j to path with defaults applied.
func Write(path string, j Job) error {
	j.normalize()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&j); err != nil {
		_ = f.Close()
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("config: flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("config: close %s: %w", path, err)
	}
	return nil
}
