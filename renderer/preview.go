package renderer

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/achilleasa/pathview/log"
	"github.com/achilleasa/pathview/scene"
	"github.com/achilleasa/pathview/types"
	"golang.org/x/sync/errgroup"
)

const (
	// Golden angle in radians; used for spreading added cubes and lights
	// around the model center.
	goldenAngle = 2.39996323

	defaultFOV      float32 = 50
	ambientTerm     float32 = 0.08
	invGamma                = 1.0 / 2.2
	cubeSideScale   float32 = 0.1
	placementRadius float32 = 0.3
)

var (
	modelAlbedo = types.XYZ(0.75, 0.75, 0.75)
	cubeAlbedo  = types.XYZ(0.8, 0.35, 0.2)
	skyTop      = types.XYZ(0.10, 0.14, 0.20)
	skyBottom   = types.XYZ(0.02, 0.02, 0.02)
)

// Preview is a CPU progressive renderer that displays the model bounds,
// interactively added cubes and lights as diffuse boxes. Frame rows are
// split between a pool of workers by a BlockScheduler.
type Preview struct {
	logger    log.Logger
	opts      Options
	scheduler BlockScheduler

	frameW, frameH int
	camera         scene.Camera
	settings       Settings

	boxes      []types.BBox
	lights     []scene.QuadLight
	center     types.Vec3
	floorY     float32
	worldScale float32

	accumBuffer []types.Vec3
	frameBuffer []types.Vec3
	pixels      []uint32

	accumulatedFrames uint32
	frames            uint64
	workerStats       []WorkerStat
	renderTime        time.Duration
	closed            bool
}

// Create a new preview renderer for the given model.
func NewPreview(model *scene.Model, opts Options) (*Preview, error) {
	if model == nil {
		return nil, fmt.Errorf("renderer: no model supplied")
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.FOV <= 0 || opts.FOV >= 180 {
		opts.FOV = defaultFOV
	}
	if opts.Exposure <= 0 {
		opts.Exposure = 1.0
	}
	if opts.Settings.SamplesPerPixel < 1 {
		opts.Settings = DefaultSettings()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = PerfectScheduler()
	}

	p := &Preview{
		logger:    log.New("preview renderer"),
		opts:      opts,
		scheduler: opts.Scheduler,
		settings:  opts.Settings,
		lights:    []scene.QuadLight{opts.Light},
	}
	p.SetModel(model)

	return p, nil
}

// Replace the rendered model. Any interactively added cubes are discarded.
func (p *Preview) SetModel(model *scene.Model) {
	p.boxes = []types.BBox{model.Bounds}
	p.center = model.Bounds.Center()
	p.floorY = p.center[1]
	if !model.Bounds.Empty() {
		p.floorY = model.Bounds[0][1]
	}
	p.worldScale = model.WorldScale()
	p.resetAccumulation()

	p.logger.Infof("using model bounds %v - %v", model.Bounds[0], model.Bounds[1])
}

func (p *Preview) SetCamera(cam scene.Camera) {
	p.camera = cam
	p.resetAccumulation()
}

func (p *Preview) SetSettings(settings Settings) {
	if settings.SamplesPerPixel < 1 {
		settings.SamplesPerPixel = 1
	}
	if settings.Accumulate != p.settings.Accumulate || settings.SamplesPerPixel != p.settings.SamplesPerPixel {
		p.resetAccumulation()
	}
	p.settings = settings
}

func (p *Preview) Resize(frameW, frameH int) error {
	if frameW < 0 || frameH < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidFrameSize, frameW, frameH)
	}

	p.frameW, p.frameH = frameW, frameH
	p.accumBuffer = make([]types.Vec3, frameW*frameH)
	p.frameBuffer = make([]types.Vec3, frameW*frameH)
	p.pixels = make([]uint32, frameW*frameH)
	p.resetAccumulation()
	return nil
}

func (p *Preview) Render() error {
	if p.closed {
		return ErrClosed
	}
	if p.frameW == 0 || p.frameH == 0 {
		return nil
	}

	start := time.Now()
	numWorkers := p.opts.Workers
	if numWorkers > p.frameH {
		numWorkers = p.frameH
	}
	if len(p.workerStats) != numWorkers {
		p.workerStats = make([]WorkerStat, numWorkers)
		for idx := range p.workerStats {
			p.workerStats[idx].Id = fmt.Sprintf("worker-%02d", idx)
		}
	}

	overwrite := !p.settings.Accumulate || p.accumulatedFrames == 0
	view := p.setupView()
	seed := int64(p.frames) * int64(numWorkers+1)

	var group errgroup.Group
	var blockY uint32
	for idx, blockH := range p.scheduler.Schedule(p.workerStats, uint32(p.frameH)) {
		y0, y1, workerIndex := blockY, blockY+blockH, idx
		blockY = y1
		group.Go(func() error {
			blockStart := time.Now()
			rng := rand.New(rand.NewSource(seed + int64(workerIndex)))
			p.renderRows(view, int(y0), int(y1), rng, overwrite)

			stat := &p.workerStats[workerIndex]
			stat.BlockH = y1 - y0
			stat.FramePercent = 100.0 * float32(y1-y0) / float32(p.frameH)
			stat.RenderTime = time.Since(blockStart)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	if p.settings.Accumulate {
		p.accumulatedFrames++
	} else {
		p.accumulatedFrames = 1
	}
	p.resolve()

	p.frames++
	p.renderTime = time.Since(start)
	return nil
}

func (p *Preview) DownloadPixels(dst []uint32) {
	copy(dst, p.pixels)
}

func (p *Preview) RebuildAcceleration() {
	n := float64(len(p.boxes))
	side := cubeSideScale * p.worldScale
	radius := placementRadius * p.worldScale
	center := p.center.Add(types.XYZ(
		radius*float32(math.Cos(n*goldenAngle)),
		0,
		radius*float32(math.Sin(n*goldenAngle)),
	))
	center[1] = p.floorY + 0.5*side

	p.boxes = append(p.boxes, types.CubeBBox(center, side))
	p.resetAccumulation()
	p.logger.Noticef("added cube %d at %v; scene now contains %d boxes", len(p.boxes)-1, center, len(p.boxes))
}

func (p *Preview) AddLight() {
	n := float64(len(p.lights))
	radius := placementRadius * p.worldScale
	offset := types.XYZ(
		radius*float32(math.Cos(n*goldenAngle)),
		0,
		radius*float32(math.Sin(n*goldenAngle)),
	)

	light := p.opts.Light.Translate(offset)
	p.lights = append(p.lights, light)
	p.resetAccumulation()
	p.logger.Noticef("added light %d at %v", len(p.lights)-1, light.Center())
}

func (p *Preview) Stats() FrameStats {
	workers := make([]WorkerStat, len(p.workerStats))
	copy(workers, p.workerStats)
	return FrameStats{
		Workers:           workers,
		RenderTime:        p.renderTime,
		Frames:            p.frames,
		AccumulatedFrames: p.accumulatedFrames,
		Boxes:             len(p.boxes),
		Lights:            len(p.lights),
	}
}

func (p *Preview) Close() {
	p.closed = true
	p.accumBuffer = nil
	p.frameBuffer = nil
	p.pixels = nil
}

func (p *Preview) resetAccumulation() {
	p.accumulatedFrames = 0
}

type viewSetup struct {
	origin         types.Vec3
	forward        types.Vec3
	right          types.Vec3
	up             types.Vec3
	tanHalfFov     float32
	aspect         float32
	invW, invH     float32
	samplesPerPass int
}

func (p *Preview) setupView() viewSetup {
	forward := p.camera.At.Sub(p.camera.From).Normalize()
	right := forward.Cross(p.camera.Up).Normalize()
	return viewSetup{
		origin:         p.camera.From,
		forward:        forward,
		right:          right,
		up:             right.Cross(forward),
		tanHalfFov:     float32(math.Tan(float64(p.opts.FOV) * math.Pi / 360)),
		aspect:         float32(p.frameW) / float32(p.frameH),
		invW:           1.0 / float32(p.frameW),
		invH:           1.0 / float32(p.frameH),
		samplesPerPass: p.settings.SamplesPerPixel,
	}
}

// Render rows [y0, y1). Row 0 is the bottom row of the frame.
func (p *Preview) renderRows(view viewSetup, y0, y1 int, rng *rand.Rand, overwrite bool) {
	scaler := 1.0 / float32(view.samplesPerPass)
	for y := y0; y < y1; y++ {
		for x := 0; x < p.frameW; x++ {
			var color types.Vec3
			for s := 0; s < view.samplesPerPass; s++ {
				u := (2*(float32(x)+rng.Float32())*view.invW - 1) * view.tanHalfFov * view.aspect
				v := (2*(float32(y)+rng.Float32())*view.invH - 1) * view.tanHalfFov
				dir := view.forward.Add(view.right.Mul(u)).Add(view.up.Mul(v)).Normalize()
				color = color.Add(p.trace(view.origin, dir))
			}
			color = color.Mul(scaler)

			index := y*p.frameW + x
			if overwrite {
				p.accumBuffer[index] = color
			} else {
				p.accumBuffer[index] = p.accumBuffer[index].Add(color)
			}
		}
	}
}

func (p *Preview) trace(origin, dir types.Vec3) types.Vec3 {
	hitIndex := -1
	hitDist := float32(math.Inf(1))
	for idx, box := range p.boxes {
		if t, ok := intersectBox(origin, dir, box); ok && t < hitDist {
			hitIndex, hitDist = idx, t
		}
	}

	if hitIndex < 0 {
		t := 0.5 * (dir[1] + 1.0)
		return skyBottom.Mul(1 - t).Add(skyTop.Mul(t))
	}

	hitPoint := origin.Add(dir.Mul(hitDist))
	normal := boxNormal(p.boxes[hitIndex], hitPoint)
	albedo := modelAlbedo
	if hitIndex > 0 {
		albedo = cubeAlbedo
	}

	radiance := types.XYZ(ambientTerm, ambientTerm, ambientTerm)
	scale2 := p.worldScale * p.worldScale
	for _, light := range p.lights {
		toLight := light.Center().Sub(hitPoint)
		dist2 := toLight.Dot(toLight)
		// Two-sided so that closed models lit from inside remain visible.
		nDotL := float32(math.Abs(float64(normal.Dot(toLight.Normalize()))))

		color := light.Color
		if maxC := color.MaxComponent(); maxC > 0 {
			color = color.Mul(1.0 / maxC)
		}
		radiance = radiance.Add(color.Mul(nDotL / (1.0 + dist2/scale2)))
	}

	return albedo.MulVec(radiance)
}

// Average the accumulation buffer, optionally denoise and convert to packed
// RGBA8 pixels.
func (p *Preview) resolve() {
	scaler := 1.0 / float32(p.accumulatedFrames)
	for idx, color := range p.accumBuffer {
		p.frameBuffer[idx] = color.Mul(scaler)
	}

	src := p.frameBuffer
	if p.settings.Denoise {
		src = denoise(p.frameBuffer, p.frameW, p.frameH)
	}

	for idx, color := range src {
		p.pixels[idx] = packRGBA(color.Mul(p.opts.Exposure))
	}
}

// Slab test; returns the distance to the closest intersection in front of
// the ray origin.
func intersectBox(origin, dir types.Vec3, box types.BBox) (float32, bool) {
	tMin := float32(0)
	tMax := float32(math.Inf(1))
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / dir[axis]
		t0 := (box[0][axis] - origin[axis]) * invD
		t1 := (box[1][axis] - origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax < tMin {
			return 0, false
		}
	}

	// Origin inside the box; report the exit point.
	if tMin == 0 {
		return tMax, true
	}
	return tMin, true
}

func boxNormal(box types.BBox, point types.Vec3) types.Vec3 {
	center := box.Center()
	half := box.Span().Mul(0.5)

	bestAxis, bestDist := 0, float32(-1)
	for axis := 0; axis < 3; axis++ {
		if half[axis] == 0 {
			continue
		}
		d := float32(math.Abs(float64((point[axis] - center[axis]) / half[axis])))
		if d > bestDist {
			bestAxis, bestDist = axis, d
		}
	}

	var normal types.Vec3
	normal[bestAxis] = 1
	if point[bestAxis] < center[bestAxis] {
		normal[bestAxis] = -1
	}
	return normal
}

func packRGBA(color types.Vec3) uint32 {
	r := toByte(color[0])
	g := toByte(color[1])
	b := toByte(color[2])
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | 0xff<<24
}

func toByte(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Pow(float64(v), invGamma)*255 + 0.5)
}
