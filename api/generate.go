package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/openclaw/qrdesigner/designer"
)

// formOverhead is allowed on top of the logo limit for the text fields and
// multipart framing.
const formOverhead = 1 << 20

var errLogoTooLarge = errors.New("logo file is too large")

type previewResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	PreviewPNG string `json:"preview_png,omitempty"`
	Filename   string `json:"filename,omitempty"`
	MIMEType   string `json:"mime_type,omitempty"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
}

// handlePreview runs one generation cycle and returns the composed image as
// base64 PNG. Empty text is not an error: the response carries the guidance
// message instead of an image.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	art, ok := s.generate(w, r)
	if !ok {
		return
	}
	if art == nil {
		writeJSON(w, http.StatusOK, previewResponse{Status: "empty", Message: designer.GuidanceMessage})
		return
	}

	png := art.Data
	if art.Format != designer.FormatPNG {
		p, err := designer.Exporter{}.Export(art.Image, designer.FormatPNG)
		if err != nil {
			s.fail(w, err)
			return
		}
		png = p.Data
	}

	writeJSON(w, http.StatusOK, previewResponse{
		Status:     "ok",
		Message:    "Scan Me, QR Generated Successfully",
		PreviewPNG: base64.StdEncoding.EncodeToString(png),
		Filename:   art.Filename,
		MIMEType:   art.MIMEType,
		Width:      art.Width,
		Height:     art.Height,
	})
}

// handleGenerate runs one generation cycle and streams the artifact as a
// download.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	art, ok := s.generate(w, r)
	if !ok {
		return
	}
	if art == nil {
		writeError(w, http.StatusUnprocessableEntity, designer.GuidanceMessage)
		return
	}

	w.Header().Set("Content-Type", art.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(art.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(art.Data)
}

// generate parses the submission and runs the pipeline. A nil artifact with
// ok set means the text was empty. When ok is false the error response has
// already been written.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) (*designer.Artifact, bool) {
	req, err := s.parseRequest(w, r)
	if errors.Is(err, designer.ErrEmptyInput) {
		return nil, true
	}
	if err != nil {
		s.fail(w, err)
		return nil, false
	}

	art, err := s.Generator.Generate(req)
	if errors.Is(err, designer.ErrEmptyInput) {
		return nil, true
	}
	if err != nil {
		s.fail(w, err)
		return nil, false
	}
	return art, true
}

// parseRequest reads a multipart or urlencoded form into a Request. The logo
// is only decoded when there is text to encode.
func (s *Server) parseRequest(w http.ResponseWriter, r *http.Request) (designer.Request, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxLogoBytes+formOverhead)

	if err := r.ParseMultipartForm(formOverhead); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return designer.Request{}, fmt.Errorf("parse form: %w", err)
		}
		if err := r.ParseForm(); err != nil {
			return designer.Request{}, fmt.Errorf("parse form: %w", err)
		}
	}

	req := designer.Request{
		Text:   r.FormValue("text"),
		Color:  s.DefaultColor,
		Format: s.DefaultFormat,
	}
	if req.Text == "" {
		return req, designer.ErrEmptyInput
	}

	if v := r.FormValue("color"); v != "" {
		c, err := designer.ParseColor(v)
		if err != nil {
			return req, err
		}
		req.Color = c
	}
	if v := r.FormValue("format"); v != "" {
		f, err := designer.ParseFormat(v)
		if err != nil {
			return req, err
		}
		req.Format = f
	}

	if r.MultipartForm == nil {
		return req, nil
	}
	file, _, err := r.FormFile("logo")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil
	}
	if err != nil {
		return req, fmt.Errorf("%w: %v", designer.ErrLogoDecode, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.MaxLogoBytes+1))
	if err != nil {
		return req, fmt.Errorf("%w: %v", designer.ErrLogoDecode, err)
	}
	if int64(len(data)) > s.MaxLogoBytes {
		return req, errLogoTooLarge
	}
	if len(data) == 0 {
		return req, nil
	}

	logo, err := designer.DecodeLogo(data)
	if err != nil {
		return req, err
	}
	req.Logo = logo
	return req, nil
}

// fail logs err and writes it with the matching status code.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.Log.Error("generation failed", "error", err)
	} else {
		s.Log.Warn("generation rejected", "error", err)
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig), errors.Is(err, errLogoTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, designer.ErrLogoDecode),
		errors.Is(err, designer.ErrInvalidColor),
		errors.Is(err, designer.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, designer.ErrCapacity), errors.Is(err, designer.ErrEmptyInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, designer.ErrSerialization):
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func formatNames() []string {
	names := make([]string, 0, len(designer.Formats))
	for _, f := range designer.Formats {
		names = append(names, string(f))
	}
	return names
}
