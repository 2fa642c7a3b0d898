// Package renderer paints polygon sets with OpenGL. Renderer implements
// the engine's draw backend on a core profile context: clip planes become
// clip distances and fixed-function lighting moves into the shader.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/polyfx/internal/engine/lighting"
	"github.com/Faultbox/polyfx/internal/engine/polygon"
	"github.com/Faultbox/polyfx/internal/engine/shader"
	"github.com/Faultbox/polyfx/internal/logger"
	"github.com/Faultbox/polyfx/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// Light shades lit pieces; the zero value selects lighting.Piece.
	Light lighting.Light
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	program uint32
	vao     uint32
	vbo     uint32
	texture uint32
	u       map[string]int32

	modelView  math.Mat4
	projection math.Mat4
	stack      transformStack
	buf        []float32

	log *zap.Logger
}

var uniformNames = []string{
	"uProjection", "uModelView", "uPlanes", "uClip",
	"uTexture", "uLighting", "uSolid", "uColor",
	"uOpacity", "uBrightness", "uSaturation",
	"uLightDir", "uAmbient", "uDiffuse",
}

// New creates a renderer. It must be called after the GL context exists.
func New(cfg Config) (*Renderer, error) {
	if cfg.Light == (lighting.Light{}) {
		cfg.Light = lighting.Piece
	}
	r := &Renderer{
		config:     cfg,
		modelView:  math.Identity(),
		projection: math.Identity(),
		log:        logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	r.program, err = shader.CompileProgram(pieceVertexShader, pieceFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	if r.u, err = shader.Uniforms(r.program, uniformNames...); err != nil {
		return nil, err
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(5*4)))
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("piece buffers created",
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
	)
	return r, nil
}

// Close releases GL resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetView sets the host transform pieces are drawn under.
func (r *Renderer) SetView(modelView, projection math.Mat4) {
	r.modelView = modelView
	r.projection = projection
}

// SetTexture selects the window texture sampled by the following draws.
func (r *Renderer) SetTexture(id uint32) {
	r.texture = id
}

// BeginDraw implements polygon.Backend.
func (r *Renderer) BeginDraw(state polygon.DrawState) {
	gl.UseProgram(r.program)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	if state.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LEQUAL)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.Uniform1i(r.u["uTexture"], 0)

	shader.SetBool(r.u["uLighting"], state.Lighting)
	if state.Lighting {
		dir := r.config.Light.Uniform()
		gl.Uniform3fv(r.u["uLightDir"], 1, &dir[0])
		gl.Uniform1f(r.u["uAmbient"], r.config.Light.Ambient)
		gl.Uniform1f(r.u["uDiffuse"], r.config.Light.Diffuse)
	}
	shader.SetBool(r.u["uSolid"], false)
	shader.SetBool(r.u["uClip"], false)
	shader.SetMat4(r.u["uProjection"], r.projection)

	r.stack.reset(r.modelView)
	shader.SetMat4(r.u["uModelView"], r.stack.top())
}

// EndDraw implements polygon.Backend.
func (r *Renderer) EndDraw() {
	gl.Disable(gl.DEPTH_TEST)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// PushTransform implements polygon.Backend.
func (r *Renderer) PushTransform(m math.Mat4) {
	r.stack.push(m)
	shader.SetMat4(r.u["uModelView"], r.stack.top())
}

// PopTransform implements polygon.Backend.
func (r *Renderer) PopTransform() {
	r.stack.pop()
	shader.SetMat4(r.u["uModelView"], r.stack.top())
}

// SetClipPlanes implements polygon.Backend.
func (r *Renderer) SetClipPlanes(planes [4][4]float64) {
	flat := planeUniforms(planes)
	gl.Uniform4fv(r.u["uPlanes"], 4, &flat[0])
	shader.SetBool(r.u["uClip"], true)
	for i := uint32(0); i < 4; i++ {
		gl.Enable(gl.CLIP_DISTANCE0 + i)
	}
}

// DisableClipPlanes implements polygon.Backend.
func (r *Renderer) DisableClipPlanes() {
	shader.SetBool(r.u["uClip"], false)
	for i := uint32(0); i < 4; i++ {
		gl.Disable(gl.CLIP_DISTANCE0 + i)
	}
}

// SetPaint implements polygon.Backend.
func (r *Renderer) SetPaint(attrib polygon.PaintAttributes) {
	gl.Uniform1f(r.u["uOpacity"], attrib.Opacity)
	gl.Uniform1f(r.u["uBrightness"], attrib.Brightness)
	gl.Uniform1f(r.u["uSaturation"], attrib.Saturation)
}

// DrawFace implements polygon.Backend.
func (r *Renderer) DrawFace(f polygon.Face) {
	r.buf = appendFace(r.buf[:0], f)
	if len(r.buf) == 0 {
		return
	}
	r.upload()
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, int32(len(r.buf)/floatsPerVertex))
}

// DrawLines draws xyz line vertices in screen space with a flat colour.
// With loop set the last vertex joins the first.
func (r *Renderer) DrawLines(xyz []float32, c color.RGBA, loop bool) {
	if len(xyz) < 6 {
		return
	}
	r.BeginDraw(polygon.DrawState{})
	shader.SetBool(r.u["uSolid"], true)
	gl.Uniform4f(r.u["uColor"], float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
	r.SetPaint(polygon.PaintAttributes{Opacity: 1, Brightness: 1, Saturation: 1})

	r.buf = appendLines(r.buf[:0], xyz)
	r.upload()
	mode := uint32(gl.LINES)
	if loop {
		mode = gl.LINE_LOOP
	}
	gl.DrawArrays(mode, 0, int32(len(r.buf)/floatsPerVertex))
	r.EndDraw()
}

// ReadPixels returns the framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, image.Point) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, image.Point{}
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels, image.Pt(w, h)
}

func (r *Renderer) upload() {
	gl.BufferData(gl.ARRAY_BUFFER, len(r.buf)*4, gl.Ptr(&r.buf[0]), gl.DYNAMIC_DRAW)
}
