package loaders

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Material defaults applied when a primitive line omits its coefficients
const (
	DefaultReflective = 0.0
	DefaultRefractive = 0.0
	DefaultIOR        = 1.5
)

// RTResolution is the render record: image size, samples and depth bound
type RTResolution struct {
	Width   int
	Height  int
	Samples int // 0 when omitted
	Depth   int // 0 when omitted
}

// RTAmbient is the ambient record
type RTAmbient struct {
	Ratio float64
	Color core.Vec3
}

// RTCamera is the camera record
type RTCamera struct {
	Position  core.Vec3
	Direction core.Vec3 // Unit view direction
	FOV       float64   // Horizontal field of view in degrees
}

// RTChecker is the optional checker suffix of a primitive
type RTChecker struct {
	Color core.Vec3
	Size  float64
}

// RTLight is a light record (l, ld, lr, lc)
type RTLight struct {
	Kind     string
	Line     int
	Position core.Vec3 // Position or center
	Normal   core.Vec3 // Direction for ld, facing normal for lr/lc
	Width    float64
	Height   float64
	Diameter float64
	Ratio    float64
	Color    core.Vec3
}

// RTPrimitive is a surface record (sp, pl, plr, plc)
type RTPrimitive struct {
	Kind       string
	Line       int
	Position   core.Vec3 // Center, or a point on the plane
	Normal     core.Vec3
	Width      float64
	Height     float64
	Diameter   float64
	Color      core.Vec3
	Reflective float64
	Refractive float64
	IOR        float64
	Checker    *RTChecker
}

// RTScene contains all parsed records of an .rt scene description
type RTScene struct {
	Resolution *RTResolution
	Ambient    *RTAmbient
	Background *core.Vec3
	Camera     *RTCamera
	Lights     []RTLight
	Primitives []RTPrimitive
	Warnings   []string // Values that were clamped into range
}

// rtParser carries the scene being built and the current line
type rtParser struct {
	scene  *RTScene
	line   int
	fields []string
	pos    int
}

// ParseRT parses an .rt scene description from an io.Reader
func ParseRT(reader io.Reader) (*RTScene, error) {
	parser := &rtParser{scene: &RTScene{}}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		parser.line++
		if err := parser.processLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", parser.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	return parser.scene, nil
}

// LoadRT loads and parses an .rt or gzip-compressed .rt.gz scene file
func LoadRT(filename string) (*RTScene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(strings.ToLower(filename), ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	scene, err := ParseRT(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filename), err)
	}
	return scene, nil
}

// IsRTPath reports whether filename names an .rt or .rt.gz scene
func IsRTPath(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".rt") || strings.HasSuffix(lower, ".rt.gz")
}

// validateFilePath validates a file path for obvious problems
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	// Check for extremely long paths that could cause issues
	if len(filepath.Clean(filename)) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	if !IsRTPath(filename) {
		return fmt.Errorf("invalid file type: only .rt and .rt.gz files are allowed")
	}

	return nil
}

// processLine parses one record
func (p *rtParser) processLine(line string) error {
	if idx := strings.Index(line, "#"); idx >= 0 {
		line = line[:idx]
	}
	p.fields = strings.Fields(line)
	p.pos = 0
	if len(p.fields) == 0 {
		return nil
	}

	id := p.next()
	switch id {
	case "R":
		return p.parseResolution()
	case "A":
		return p.parseAmbient()
	case "bg":
		return p.parseBackground()
	case "c":
		return p.parseCamera()
	case "l", "ld", "lr", "lc":
		return p.parseLight(id)
	case "sp", "pl", "plr", "plc":
		return p.parsePrimitive(id)
	default:
		return fmt.Errorf("unknown identifier %q", id)
	}
}

func (p *rtParser) parseResolution() error {
	if p.scene.Resolution != nil {
		return fmt.Errorf("duplicate R record")
	}
	res := &RTResolution{}
	var err error
	if res.Width, err = p.positiveInt("width"); err != nil {
		return err
	}
	if res.Height, err = p.positiveInt("height"); err != nil {
		return err
	}
	if p.more() {
		if res.Samples, err = p.positiveInt("samples"); err != nil {
			return err
		}
	}
	if p.more() {
		if res.Depth, err = p.positiveInt("depth"); err != nil {
			return err
		}
	}
	p.scene.Resolution = res
	return p.done()
}

func (p *rtParser) parseAmbient() error {
	if p.scene.Ambient != nil {
		return fmt.Errorf("duplicate A record")
	}
	ratio, err := p.ratio()
	if err != nil {
		return err
	}
	color, err := p.color("ambient color")
	if err != nil {
		return err
	}
	p.scene.Ambient = &RTAmbient{Ratio: ratio, Color: color}
	return p.done()
}

func (p *rtParser) parseBackground() error {
	color, err := p.color("background color")
	if err != nil {
		return err
	}
	p.scene.Background = &color
	return p.done()
}

func (p *rtParser) parseCamera() error {
	if p.scene.Camera != nil {
		return fmt.Errorf("duplicate c record")
	}
	position, err := p.vector("camera position")
	if err != nil {
		return err
	}
	direction, err := p.direction("camera direction")
	if err != nil {
		return err
	}
	fov, err := p.float("fov")
	if err != nil {
		return err
	}
	p.scene.Camera = &RTCamera{
		Position:  position,
		Direction: direction,
		FOV:       p.clamp("fov", fov, 0, 180),
	}
	return p.done()
}

func (p *rtParser) parseLight(kind string) error {
	light := RTLight{Kind: kind, Line: p.line}
	var err error

	switch kind {
	case "l":
		if light.Position, err = p.vector("light position"); err != nil {
			return err
		}
	case "ld":
		if light.Normal, err = p.direction("light direction"); err != nil {
			return err
		}
	case "lr":
		if light.Position, err = p.vector("light center"); err != nil {
			return err
		}
		if light.Normal, err = p.direction("light normal"); err != nil {
			return err
		}
		if light.Width, err = p.size("width"); err != nil {
			return err
		}
		if light.Height, err = p.size("height"); err != nil {
			return err
		}
	case "lc":
		if light.Position, err = p.vector("light center"); err != nil {
			return err
		}
		if light.Normal, err = p.direction("light normal"); err != nil {
			return err
		}
		if light.Diameter, err = p.size("diameter"); err != nil {
			return err
		}
	}

	if light.Ratio, err = p.ratio(); err != nil {
		return err
	}
	if light.Color, err = p.color("light color"); err != nil {
		return err
	}

	p.scene.Lights = append(p.scene.Lights, light)
	return p.done()
}

func (p *rtParser) parsePrimitive(kind string) error {
	prim := RTPrimitive{
		Kind:       kind,
		Line:       p.line,
		Reflective: DefaultReflective,
		Refractive: DefaultRefractive,
		IOR:        DefaultIOR,
	}
	var err error

	if prim.Position, err = p.vector("position"); err != nil {
		return err
	}
	switch kind {
	case "sp":
		if prim.Diameter, err = p.size("diameter"); err != nil {
			return err
		}
	case "pl":
		if prim.Normal, err = p.direction("normal"); err != nil {
			return err
		}
	case "plr":
		if prim.Normal, err = p.direction("normal"); err != nil {
			return err
		}
		if prim.Width, err = p.size("width"); err != nil {
			return err
		}
		if prim.Height, err = p.size("height"); err != nil {
			return err
		}
	case "plc":
		if prim.Normal, err = p.direction("normal"); err != nil {
			return err
		}
		if prim.Diameter, err = p.size("diameter"); err != nil {
			return err
		}
	}
	if prim.Color, err = p.color("color"); err != nil {
		return err
	}

	// Optional material coefficients, in order
	if p.more() && p.peek() != "checker" {
		v, err := p.float("reflective")
		if err != nil {
			return err
		}
		prim.Reflective = p.clamp("reflective", v, 0, 1)
	}
	if p.more() && p.peek() != "checker" {
		v, err := p.float("refractive")
		if err != nil {
			return err
		}
		prim.Refractive = p.clamp("refractive", v, 0, 1-prim.Reflective)
	}
	if p.more() && p.peek() != "checker" {
		v, err := p.float("ior")
		if err != nil {
			return err
		}
		prim.IOR = p.clamp("ior", v, 0.1, 10)
	}

	if p.more() && p.peek() == "checker" {
		p.next()
		color, err := p.color("checker color")
		if err != nil {
			return err
		}
		size, err := p.size("checker size")
		if err != nil {
			return err
		}
		prim.Checker = &RTChecker{Color: color, Size: size}
	}

	p.scene.Primitives = append(p.scene.Primitives, prim)
	return p.done()
}

// Token helpers

func (p *rtParser) more() bool {
	return p.pos < len(p.fields)
}

func (p *rtParser) peek() string {
	if !p.more() {
		return ""
	}
	return p.fields[p.pos]
}

func (p *rtParser) next() string {
	tok := p.peek()
	if p.more() {
		p.pos++
	}
	return tok
}

func (p *rtParser) done() error {
	if p.more() {
		return fmt.Errorf("unexpected trailing field %q", p.peek())
	}
	return nil
}

func (p *rtParser) warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf("line %d: ", p.line) + fmt.Sprintf(format, args...)
	p.scene.Warnings = append(p.scene.Warnings, msg)
}

func (p *rtParser) clamp(name string, v, lo, hi float64) float64 {
	c := max(lo, min(hi, v))
	if c != v {
		p.warnf("%s %g clamped to %g", name, v, c)
	}
	return c
}

func (p *rtParser) float(name string) (float64, error) {
	if !p.more() {
		return 0, fmt.Errorf("missing %s", name)
	}
	tok := p.next()
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s %q", name, tok)
	}
	return v, nil
}

func (p *rtParser) positiveInt(name string) (int, error) {
	if !p.more() {
		return 0, fmt.Errorf("missing %s", name)
	}
	tok := p.next()
	v, err := strconv.Atoi(tok)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", name, tok)
	}
	return v, nil
}

func (p *rtParser) size(name string) (float64, error) {
	v, err := p.float(name)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid %s %g: must be positive", name, v)
	}
	return v, nil
}

func (p *rtParser) ratio() (float64, error) {
	v, err := p.float("ratio")
	if err != nil {
		return 0, err
	}
	return p.clamp("ratio", v, 0, 1), nil
}

func (p *rtParser) triple(name string) ([3]float64, error) {
	var out [3]float64
	if !p.more() {
		return out, fmt.Errorf("missing %s", name)
	}
	tok := p.next()
	parts := strings.Split(tok, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("invalid %s %q: expected three comma-separated values", name, tok)
	}
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return out, fmt.Errorf("invalid %s %q", name, tok)
		}
		out[i] = v
	}
	return out, nil
}

func (p *rtParser) vector(name string) (core.Vec3, error) {
	t, err := p.triple(name)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(t[0], t[1], t[2]), nil
}

// direction parses a vector and normalizes it, rejecting the zero vector
func (p *rtParser) direction(name string) (core.Vec3, error) {
	v, err := p.vector(name)
	if err != nil {
		return core.Vec3{}, err
	}
	if v.IsZero() {
		return core.Vec3{}, fmt.Errorf("invalid %s: zero vector", name)
	}
	if math.Abs(v.Length()-1) > 1e-3 {
		p.warnf("%s %v normalized", name, v)
	}
	return v.Normalize(), nil
}

// color parses 0..255 components into a [0,1] color
func (p *rtParser) color(name string) (core.Vec3, error) {
	t, err := p.triple(name)
	if err != nil {
		return core.Vec3{}, err
	}
	for i := range t {
		t[i] = p.clamp(name, t[i], 0, 255)
	}
	return core.NewVec3(t[0]/255, t[1]/255, t[2]/255), nil
}
