package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ssargent/polyparser/pkg/archive"
	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/convert"
	"github.com/ssargent/polyparser/pkg/layout"
	"github.com/ssargent/polyparser/pkg/slot"
)

// statusFor maps a conversion or archive error to an HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, convert.ErrInvalidTree), errors.Is(err, archive.ErrEmpty):
		return http.StatusBadRequest
	case errors.Is(err, archive.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, codec.ErrMalformedStream),
		errors.Is(err, codec.ErrUnresolvedReference),
		errors.Is(err, codec.ErrAnomalousValue),
		errors.Is(err, codec.ErrUnencodable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	sendError(w, err.Error(), code)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return body, nil
}

func (s *Server) session() *codec.Session {
	opts := s.config.Session
	if opts.Logger == nil {
		opts.Logger = s.log
	}
	return codec.NewSession(opts)
}

// treeFormat reads ?format=, defaulting to JSON.
func treeFormat(r *http.Request) (convert.Format, error) {
	q := r.URL.Query().Get("format")
	if q == "" {
		return convert.FormatJSON, nil
	}
	f, err := convert.ParseFormat(q)
	if err != nil {
		return "", fmt.Errorf("%w: %w", convert.ErrInvalidTree, err)
	}
	return f, nil
}

// writeTree sends v as a bare YAML document. JSON responses go through
// the APIResponse envelope instead.
func writeTree(w http.ResponseWriter, v any, sessionID string, newer bool) error {
	data, err := convert.Marshal(v, convert.FormatYAML, convert.DefaultIndent)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("X-Session-ID", sessionID)
	if newer {
		w.Header().Set("X-Newer-Version", "true")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	return nil
}

// handleHealth reports whether the server and its archive are usable.
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Success	200	{object}	APIResponse
//	@Router		/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "healthy",
		"archive": s.archive != nil,
	}
	if s.archive != nil {
		list, err := s.archive.List()
		if err != nil {
			s.metrics.RecordHealthCheck(false)
			sendError(w, "archive unavailable: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		status["archive_entries"] = len(list)
	}
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, status)
}

// handleDecodeLayout converts an uploaded layout binary to a tree.
//
//	@Summary	Decode a binary layout
//	@Tags		layouts
//	@Accept		octet-stream
//	@Produce	json
//	@Param		format	query	string	false	"json or yaml"
//	@Security	ApiKeyAuth
//	@Success	200	{object}	APIResponse{data=LayoutDecodeResponse}
//	@Failure	422	{object}	APIResponse
//	@Router		/layouts/decode [post]
func (s *Server) handleDecodeLayout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	f, err := treeFormat(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	body, err := s.readBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	sess := s.session()
	res, err := layout.DecodeBytes(body, sess)
	s.metrics.RecordConversion(archive.KindLayout, "decode", len(body), err == nil, time.Since(start))
	s.metrics.RecordDecodeFindings(archive.KindLayout, len(sess.Warnings()), sess.Anomalies())
	if err != nil {
		s.fail(w, err)
		return
	}

	if f == convert.FormatYAML {
		if err := writeTree(w, &res.Layout, sess.ID.String(), res.NewerVersion); err != nil {
			s.fail(w, err)
		}
		return
	}
	sendSuccess(w, LayoutDecodeResponse{
		SessionID:    sess.ID.String(),
		Theme:        layout.Theme(res.Layout.StubKey).Name,
		NewerVersion: res.NewerVersion,
		Warnings:     res.Warnings,
		Layout:       &res.Layout,
	})
}

// handleEncodeLayout converts a layout tree to a binary at the latest
// format version.
//
//	@Summary	Encode a layout tree
//	@Tags		layouts
//	@Accept		json
//	@Produce	octet-stream
//	@Param		format	query	string	false	"json, jsonc or yaml"
//	@Security	ApiKeyAuth
//	@Success	200	{file}		binary
//	@Failure	400	{object}	APIResponse
//	@Router		/layouts/encode [post]
func (s *Server) handleEncodeLayout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	f, err := treeFormat(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	body, err := s.readBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	var data []byte
	l, err := convert.UnmarshalLayout(body, f)
	if err == nil {
		data, err = layout.EncodeBytes(l, s.session())
	}
	s.metrics.RecordConversion(archive.KindLayout, "encode", len(body), err == nil, time.Since(start))
	if err != nil {
		s.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="layout.layout"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleDecodeSlot converts an uploaded save slot to a tree.
//
//	@Summary	Decode a save slot
//	@Tags		slots
//	@Accept		octet-stream
//	@Produce	json
//	@Param		format	query	string	false	"json or yaml"
//	@Security	ApiKeyAuth
//	@Success	200	{object}	APIResponse{data=SlotDecodeResponse}
//	@Failure	422	{object}	APIResponse
//	@Router		/slots/decode [post]
func (s *Server) handleDecodeSlot(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	f, err := treeFormat(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	body, err := s.readBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	sess := s.session()
	res, err := slot.DecodeBytes(body, sess)
	s.metrics.RecordConversion(archive.KindSlot, "decode", len(body), err == nil, time.Since(start))
	s.metrics.RecordDecodeFindings(archive.KindSlot, len(sess.Warnings()), sess.Anomalies())
	if err != nil {
		s.fail(w, err)
		return
	}

	if f == convert.FormatYAML {
		if err := writeTree(w, &res.Slot, sess.ID.String(), res.NewerVersion); err != nil {
			s.fail(w, err)
		}
		return
	}
	sendSuccess(w, SlotDecodeResponse{
		SessionID:    sess.ID.String(),
		LastWrite:    slot.FormatLastWrite(res.Slot.LastWriteTimeTicks),
		NewerVersion: res.NewerVersion,
		Warnings:     res.Warnings,
		Slot:         &res.Slot,
	})
}

func (s *Server) requireArchive(w http.ResponseWriter) bool {
	if s.archive == nil {
		sendError(w, "archive is not enabled", http.StatusServiceUnavailable)
		return false
	}
	return true
}

// archiveMeta decodes body to validate it and describe it. The kind
// comes from ?kind= or, failing that, the extension of ?name=.
func (s *Server) archiveMeta(r *http.Request, body []byte) (archive.Meta, error) {
	name := path.Base(r.URL.Query().Get("name"))
	if name == "." || name == "/" {
		name = ""
	}
	kind := strings.ToLower(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = archive.KindLayout
		if k, _ := convert.Classify(name); k == convert.KindSlot {
			kind = archive.KindSlot
		}
	}

	switch kind {
	case archive.KindLayout:
		res, err := layout.DecodeBytes(body, s.session())
		if err != nil {
			return archive.Meta{}, err
		}
		return archive.LayoutMeta(name, &res.Layout), nil
	case archive.KindSlot:
		res, err := slot.DecodeBytes(body, s.session())
		if err != nil {
			return archive.Meta{}, err
		}
		return archive.SlotMeta(name, &res.Slot), nil
	default:
		return archive.Meta{}, fmt.Errorf("%w: unknown kind %q", convert.ErrInvalidTree, kind)
	}
}

// handleArchivePut stores a validated layout or slot file.
//
//	@Summary	Archive a file
//	@Tags		archive
//	@Accept		octet-stream
//	@Produce	json
//	@Param		name	query	string	false	"file name"
//	@Param		kind	query	string	false	"layout or slot"
//	@Security	ApiKeyAuth
//	@Success	200	{object}	APIResponse{data=ArchivePutResponse}
//	@Router		/archive [post]
func (s *Server) handleArchivePut(w http.ResponseWriter, r *http.Request) {
	if !s.requireArchive(w) {
		return
	}
	body, err := s.readBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if len(body) == 0 {
		s.fail(w, archive.ErrEmpty)
		return
	}

	meta, err := s.archiveMeta(r, body)
	if err != nil {
		s.fail(w, err)
		return
	}
	rec, existing, err := s.archive.Put(body, meta)
	s.metrics.RecordArchiveOperation("put", err == nil)
	if err != nil {
		s.fail(w, err)
		return
	}
	code := http.StatusCreated
	if existing {
		code = http.StatusOK
	}
	sendJSON(w, code, ArchivePutResponse{Record: rec, Existing: existing})
}

// handleArchiveList lists every archived record.
//
//	@Summary	List archived files
//	@Tags		archive
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Success	200	{object}	APIResponse
//	@Router		/archive [get]
func (s *Server) handleArchiveList(w http.ResponseWriter, r *http.Request) {
	if !s.requireArchive(w) {
		return
	}
	list, err := s.archive.List()
	s.metrics.RecordArchiveOperation("list", err == nil)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.metrics.SetArchiveEntries(len(list))
	if list == nil {
		list = []archive.Record{}
	}
	sendSuccess(w, list)
}

// handleArchiveGet returns one record.
//
//	@Summary	Get an archive record
//	@Tags		archive
//	@Produce	json
//	@Param		id	path	string	true	"record ID"
//	@Security	ApiKeyAuth
//	@Success	200	{object}	APIResponse
//	@Failure	404	{object}	APIResponse
//	@Router		/archive/{id} [get]
func (s *Server) handleArchiveGet(w http.ResponseWriter, r *http.Request) {
	if !s.requireArchive(w) {
		return
	}
	id, err := archive.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	rec, err := s.archive.Get(id)
	s.metrics.RecordArchiveOperation("get", err == nil)
	if err != nil {
		s.fail(w, err)
		return
	}
	sendSuccess(w, rec)
}

// handleArchiveRaw downloads the original bytes of a record.
//
//	@Summary	Download an archived file
//	@Tags		archive
//	@Produce	octet-stream
//	@Param		id	path	string	true	"record ID"
//	@Security	ApiKeyAuth
//	@Success	200	{file}		binary
//	@Failure	404	{object}	APIResponse
//	@Router		/archive/{id}/raw [get]
func (s *Server) handleArchiveRaw(w http.ResponseWriter, r *http.Request) {
	if !s.requireArchive(w) {
		return
	}
	id, err := archive.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	rec, err := s.archive.Get(id)
	var raw []byte
	if err == nil {
		raw, err = s.archive.Raw(id)
	}
	s.metrics.RecordArchiveOperation("raw", err == nil)
	if err != nil {
		s.fail(w, err)
		return
	}

	name := rec.Meta.Name
	if name == "" {
		name = id.String() + "." + rec.Meta.Kind
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// handleArchiveDelete removes a record and its payload.
//
//	@Summary	Delete an archive entry
//	@Tags		archive
//	@Produce	json
//	@Param		id	path	string	true	"record ID"
//	@Security	ApiKeyAuth
//	@Success	200	{object}	APIResponse
//	@Failure	404	{object}	APIResponse
//	@Router		/archive/{id} [delete]
func (s *Server) handleArchiveDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireArchive(w) {
		return
	}
	id, err := archive.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	err = s.archive.Delete(id)
	s.metrics.RecordArchiveOperation("delete", err == nil)
	if err != nil {
		s.fail(w, err)
		return
	}
	sendSuccess(w, map[string]string{"deleted": id.String()})
}
