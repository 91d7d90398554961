package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"strconv"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/net/trace"

	"github.com/Rohesie/wallmount-slicer/dmi"
	"github.com/Rohesie/wallmount-slicer/frames"
	"github.com/Rohesie/wallmount-slicer/layout"
	"github.com/Rohesie/wallmount-slicer/preview"
	"github.com/Rohesie/wallmount-slicer/slicer"
)

// DefaultMaxSheetBytes limits the size of uploaded sheets.
const DefaultMaxSheetBytes = 16 << 20

// maxPreviewScale bounds the scale query parameter of previews.
const maxPreviewScale = 16

// Handler serves slicing of uploaded sheets with one layout.
type Handler struct {
	layout layout.Layout

	// MaxSheetBytes limits uploads; DefaultMaxSheetBytes if zero.
	MaxSheetBytes int64
}

// NewHandler constructs a web handler slicing uploads with the passed layout.
func NewHandler(l layout.Layout) *Handler {
	return &Handler{layout: l}
}

// statusFor maps per-sheet failures to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, frames.ErrUnsupportedFormat), errors.Is(err, frames.ErrDecode), errors.Is(err, dmi.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, frames.ErrEmptyAnimation), errors.Is(err, slicer.ErrDimensionMismatch):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// state reads the uploaded sheet in the request body and slices it into a
// state with the passed name. On failure, the error is already written to w.
func (h *Handler) state(w http.ResponseWriter, r *http.Request, tr trace.Trace, name string) *dmi.State {
	limit := h.MaxSheetBytes
	if limit == 0 {
		limit = DefaultMaxSheetBytes
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		tr.LazyPrintf("reading body: %v", err)
		tr.SetError()
		http.Error(w, "could not read sheet", http.StatusRequestEntityTooLarge)
		return nil
	}
	tr.LazyPrintf("sheet of %d bytes", len(body))

	s, err := h.slice(name, body)
	if err != nil {
		tr.LazyPrintf("slicing %q: %v", name, err)
		tr.SetError()
		glog.V(1).Infof("web: slicing %q: %v", name, err)
		http.Error(w, err.Error(), statusFor(err))
		return nil
	}
	tr.LazyPrintf("state %q: %d frames", s.Name, s.Frames)
	return s
}

func (h *Handler) slice(name string, body []byte) (*dmi.State, error) {
	f, err := frames.Sniff(body)
	if err != nil {
		return nil, err
	}
	set, err := frames.Decode(bytes.NewReader(body), f)
	if err != nil {
		return nil, err
	}
	return slicer.Process(name+"."+f.String(), set, h.layout)
}

func (h *Handler) layoutHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(h.layout)
}

func (h *Handler) sliceHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.slice", r.URL.Path)
	defer tr.Finish()

	name := mux.Vars(r)["name"]
	s := h.state(w, r, tr, name)
	if s == nil {
		return
	}

	ic := dmi.New(int(h.layout.XStep), int(h.layout.YStep))
	ic.States = []*dmi.State{s}
	buf := &bytes.Buffer{}
	if err := ic.Encode(buf); err != nil {
		tr.LazyPrintf("encoding: %v", err)
		tr.SetError()
		http.Error(w, "could not encode icon", http.StatusInternalServerError)
		glog.Errorf("error encoding dmi for %q: %v", name, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".dmi"))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) previewHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.preview", r.URL.Path)
	defer tr.Finish()

	vars := mux.Vars(r)
	dir, err := layout.ParseDirection(vars["dir"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	scale := 1
	if sc := r.URL.Query().Get("scale"); sc != "" {
		scale, err = strconv.Atoi(sc)
		if err != nil || scale < 1 || scale > maxPreviewScale {
			http.Error(w, fmt.Sprintf("scale must be a number between 1 and %d", maxPreviewScale), http.StatusBadRequest)
			return
		}
	}

	s := h.state(w, r, tr, vars["name"])
	if s == nil {
		return
	}

	buf := &bytes.Buffer{}
	if err := preview.WriteGIF(buf, s, dir, scale); err != nil {
		tr.LazyPrintf("preview: %v", err)
		tr.SetError()
		http.Error(w, "could not render preview", http.StatusInternalServerError)
		glog.Errorf("error rendering preview of %q: %v", s.Name, err)
		return
	}
	w.Header().Set("Content-Type", "image/gif")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

type inspectedImage struct {
	Frame int    `json:"frame"`
	Dir   string `json:"dir"`
	URL   string `json:"url"`
}

type inspection struct {
	Name   string           `json:"name"`
	Dirs   int              `json:"dirs"`
	Frames int              `json:"frames"`
	Delays []float64        `json:"delays,omitempty"`
	Images []inspectedImage `json:"images"`
}

func (h *Handler) inspectHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.inspect", r.URL.Path)
	defer tr.Finish()

	s := h.state(w, r, tr, mux.Vars(r)["name"])
	if s == nil {
		return
	}

	out := inspection{Name: s.Name, Dirs: s.Dirs, Frames: s.Frames, Delays: s.Delays}
	for f := 0; f < s.Frames; f++ {
		for d := 0; d < s.Dirs; d++ {
			buf := &bytes.Buffer{}
			if err := png.Encode(buf, s.Image(f, d)); err != nil {
				http.Error(w, "could not encode image", http.StatusInternalServerError)
				return
			}
			out.Images = append(out.Images, inspectedImage{
				Frame: f,
				Dir:   layout.Direction(d).String(),
				URL:   dataurl.New(buf.Bytes(), "image/png").String(),
			})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(out)
}

// RegisterRoutes adds the layout, slice, preview and inspect routes to r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/layout", h.layoutHandler).Methods(http.MethodGet)
	r.HandleFunc("/slice/{name}.dmi", h.sliceHandler).Methods(http.MethodPost)
	r.HandleFunc("/preview/{name}/{dir:south|north|east|west}.gif", h.previewHandler).Methods(http.MethodPost)
	r.HandleFunc("/inspect/{name}", h.inspectHandler).Methods(http.MethodPost)
}
