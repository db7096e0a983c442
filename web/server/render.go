package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-sphere-raycaster/pkg/core"
	"github.com/df07/go-sphere-raycaster/pkg/renderer"
)

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	HitPixels        int     `json:"hitPixels"`
	BackgroundPixels int     `json:"backgroundPixels"`
	ErrorPixels      int     `json:"errorPixels"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// RenderComplete is the final event of a streamed render
type RenderComplete struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

type renderResult struct {
	img   *renderer.Image
	stats renderer.RenderStats
	err   error
}

// handleRender renders a scene and responds with the PNG image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	raytracer, err := s.newRaytracer(req, NewWebLogger(renderID, nil))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, stats, err := raytracer.Render(r.Context())
	if err != nil {
		// Client went away, nothing to answer
		return
	}

	var buf bytes.Buffer
	if err := img.WritePNG(&buf); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode image: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	w.Header().Set("X-Render-Error-Pixels", strconv.Itoa(stats.ErrorPixels))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders a scene, streaming console output via SSE and
// finishing with a "complete" event carrying the image
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	s.setSSEHeaders(w)

	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", "Invalid request: "+err.Error())
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	raytracer, err := s.newRaytracer(req, NewWebLogger(renderID, consoleChan))
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", err.Error())
		return
	}

	done := make(chan renderResult, 1)
	go func() {
		img, stats, err := raytracer.Render(ctx)
		done <- renderResult{img: img, stats: stats, err: err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, flusher, msg)

		case result := <-done:
			s.drainConsole(w, flusher, consoleChan)
			if result.err != nil {
				s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("Render error: %v", result.err))
				return
			}
			s.sendComplete(w, flusher, result)
			return

		case <-ctx.Done():
			// Client disconnected; the render stops at the next tile
			return
		}
	}
}

// newRaytracer sets up the scene and raytracer for a request
func (s *Server) newRaytracer(req *RenderRequest, logger core.Logger) (*renderer.Raytracer, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, err
	}

	config := renderer.DefaultConfig()
	config.Integrator.MaxDepth = req.MaxDepth
	return renderer.NewRaytracer(sceneObj, config, logger), nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// drainConsole forwards console messages still buffered after the render
func (s *Server) drainConsole(w http.ResponseWriter, flusher http.Flusher, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, flusher, msg)
		default:
			return
		}
	}
}

func (s *Server) sendConsoleMessage(w http.ResponseWriter, flusher http.Flusher, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.sendSSEEvent(w, flusher, "console", string(data))
}

// sendComplete encodes the finished image and sends the final event
func (s *Server) sendComplete(w http.ResponseWriter, flusher http.Flusher, result renderResult) {
	imageData, err := imageToBase64PNG(result.img)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	data, err := json.Marshal(RenderComplete{
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:      result.stats.TotalPixels,
			HitPixels:        result.stats.HitPixels,
			BackgroundPixels: result.stats.BackgroundPixels,
			ErrorPixels:      result.stats.ErrorPixels,
			AverageLuminance: renderer.CalculateAverageLuminance(result.img.RGBA()),
		},
		ElapsedMs: result.stats.Elapsed.Milliseconds(),
	})
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", err.Error())
		return
	}
	s.sendSSEEvent(w, flusher, "complete", string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img *renderer.Image) (string, error) {
	var buf bytes.Buffer
	if err := img.WritePNG(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
