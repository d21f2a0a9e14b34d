// Package upload reads a takeoff file from a request and shapes the import response.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"steel-estimator/internal/service/importer"
	"steel-estimator/internal/service/takeoff"
)

var (
	ErrTooLarge = errors.New("file too large")
	ErrNoFile   = errors.New("no file in request")
)

// File is an uploaded takeoff.
type File struct {
	Name   string
	Format string
	Data   []byte
}

// Read takes the "file" part of a multipart form, or else the raw body. A raw
// body may name itself with the "filename" query parameter.
func Read(r *http.Request, limit int64) (*File, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		name string
		src  io.Reader = r.Body
	)

	if mediaType == "multipart/form-data" {
		mr, err := r.MultipartReader()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoFile, err)
		}

		for {
			part, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				return nil, ErrNoFile
			}
			if err != nil {
				return nil, fmt.Errorf("read multipart: %w", err)
			}
			if part.FormName() == "file" {
				name, src = part.FileName(), part
				break
			}
		}
	} else {
		name = r.URL.Query().Get("filename")
	}

	data, tooLarge, err := importer.ReadLimited(src, limit)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if tooLarge {
		return nil, ErrTooLarge
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrNoFile
	}

	return &File{Name: name, Format: importer.DetectFormat(name, data), Data: data}, nil
}

// Status maps read errors to HTTP status codes.
func Status(err error) int {
	if errors.Is(err, ErrTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// Resp is the import response. Error is null on success; on a fatal error every
// other field is empty.
type Resp struct {
	Error        *string               `json:"error"`
	ImportID     string                `json:"import_id,omitempty"`
	Items        []*takeoff.Item       `json:"items"`
	Stats        takeoff.Stats         `json:"stats"`
	DroppedCodes []takeoff.DroppedCode `json:"dropped_codes"`
	Warnings     []takeoff.Warning     `json:"warnings"`
}

func Success(res *takeoff.Result) Resp {
	resp := Resp{
		ImportID:     res.ImportID,
		Items:        res.Items,
		Stats:        res.Stats,
		DroppedCodes: res.DroppedCodes,
		Warnings:     res.Warnings,
	}
	if resp.DroppedCodes == nil {
		resp.DroppedCodes = []takeoff.DroppedCode{}
	}
	if resp.Warnings == nil {
		resp.Warnings = []takeoff.Warning{}
	}
	return resp
}

func Failure(msg string) Resp {
	return Resp{
		Error:        &msg,
		Items:        []*takeoff.Item{},
		DroppedCodes: []takeoff.DroppedCode{},
		Warnings:     []takeoff.Warning{},
	}
}
