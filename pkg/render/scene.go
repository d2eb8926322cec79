package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blend"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

const (
	// CameraDistance is the eye distance of the camera's central projection.
	CameraDistance = 3
	// LightBox is the edge length of the light's orthographic box. With the
	// light LightBox/2 away from the center the box spans the cube of that
	// size around the scene center.
	LightBox = 4
)

// Pass names one rasterization pass of RenderModel.
type Pass string

const (
	PassShadow Pass = "shadow"
	PassDepth  Pass = "depth"
	PassColor  Pass = "color"
)

// RenderOptions configures RenderModel.
type RenderOptions struct {
	Width  int
	Height int
	// Light and Camera positions; both look at the origin.
	Light   math3d.Vec3
	Camera  math3d.Vec3
	Shading Shading

	// Progress, when set, is called after every face of every pass. The
	// shadow and depth passes run concurrently, so it must be safe for
	// concurrent use.
	Progress func(pass Pass, face, faces int)
}

// DefaultRenderOptions returns an 800×800 frame with the camera at (1,1,1)
// and the light at (0,0,-2), behind the scene as seen from the camera.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:   800,
		Height:  800,
		Light:   math3d.V3(0, 0, -2),
		Camera:  math3d.V3(1, 1, 1),
		Shading: DefaultShading(),
	}
}

// Result holds the final frame and the intermediate buffers.
type Result struct {
	Frame     *Image[color.RGBA]
	ZBuffer   *Image[color.Gray]
	ShadowMap *Image[color.Gray]
	AO        *Image[color.Gray]
}

// Composite multiplies the frame by the ambient occlusion buffer.
func (r *Result) Composite() *image.RGBA {
	return blend.Multiply(r.Frame.ToImage(), r.AO.ToImage())
}

// Setup builds the uniform state for a frame: camera and light view
// transforms, the camera's perspective and the light's orthographic
// projection.
func Setup(opts RenderOptions) (*Pipeline, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", opts.Width, opts.Height)
	}

	camera := NewCamera(opts.Camera)
	view, err := camera.ViewMatrix()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	light := NewCamera(opts.Light)
	lightView, err := light.ViewMatrix()
	if err != nil {
		return nil, fmt.Errorf("light: %w", err)
	}

	persp, err := math3d.Perspective(CameraDistance)
	if err != nil {
		return nil, err
	}
	ortho, err := math3d.Orthographic(LightBox, LightBox, LightBox)
	if err != nil {
		return nil, err
	}

	p := NewPipeline(opts.Width, opts.Height)
	p.VPM = persp.Mul(view)
	p.LightVPM = ortho.Mul(lightView)
	p.LightDir = light.Direction()
	p.ViewVector = camera.ViewVector()
	p.Shading = opts.Shading
	return p, nil
}

// RenderModel renders one frame of model lit by a single directional light
// with shadows. The light pass and the ambient occlusion pass are
// independent and run concurrently; the color pass starts once the shadow
// map is complete.
func RenderModel(model Model, diffuse, normalMap *Image[color.RGBA], opts RenderOptions) (*Result, error) {
	base, err := Setup(opts)
	if err != nil {
		return nil, err
	}
	base.Diffuse = diffuse
	base.NormalMap = normalMap

	res := &Result{
		Frame:     NewImage[color.RGBA](opts.Width, opts.Height),
		ZBuffer:   NewImage[color.Gray](opts.Width, opts.Height),
		ShadowMap: NewImage[color.Gray](opts.Width, opts.Height),
	}

	var g errgroup.Group
	g.Go(func() error {
		p := base.forPass(PassShadow, opts.Progress)
		scratch := NewImage[color.RGBA](opts.Width, opts.Height)
		if err := p.DrawModel(model, DepthShader{}, scratch, res.ShadowMap); err != nil {
			return fmt.Errorf("shadow pass: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		p := base.forPass(PassDepth, opts.Progress)
		scratch := NewImage[color.RGBA](opts.Width, opts.Height)
		if err := p.DrawModel(model, ZShader{}, scratch, res.ZBuffer); err != nil {
			return fmt.Errorf("depth pass: %w", err)
		}
		res.AO = SSAO(res.ZBuffer)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := base.forPass(PassColor, opts.Progress)
	p.ShadowMap = res.ShadowMap
	depth := NewImage[color.Gray](opts.Width, opts.Height)
	if err := p.DrawModel(model, &MainShader{}, res.Frame, depth); err != nil {
		return nil, fmt.Errorf("color pass: %w", err)
	}
	return res, nil
}

// forPass returns a copy of p reporting progress under pass.
func (p *Pipeline) forPass(pass Pass, progress func(Pass, int, int)) *Pipeline {
	cp := *p
	cp.Progress = nil
	if progress != nil {
		cp.Progress = func(face, faces int) { progress(pass, face, faces) }
	}
	return &cp
}
