package handlers

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/filehaven/filehaven/internal/logger"
	"github.com/filehaven/filehaven/pkg/access"
	"github.com/filehaven/filehaven/pkg/controlplane/runtime"
)

// FileHandler handles file browsing and manipulation API endpoints.
//
// Every route goes through the authorization facade before touching the
// filesystem. A policy denial is a 403 carrying the denial reason, a
// malformed path or unknown action is a 400, and only collaborator
// failures surface as 500s.
type FileHandler struct {
	runtime       *runtime.Runtime
	maxUploadSize int64
}

// NewFileHandler creates a new FileHandler. maxUploadSize of zero means
// no limit on upload bodies.
func NewFileHandler(rt *runtime.Runtime, maxUploadSize int64) *FileHandler {
	return &FileHandler{
		runtime:       rt,
		maxUploadSize: maxUploadSize,
	}
}

// AuthorizeRequest is the request body for POST /api/v1/files/authorize.
type AuthorizeRequest struct {
	Path   string `json:"path"`
	Action string `json:"action"`
}

// AuthorizeResponse is the response body for POST /api/v1/files/authorize.
type AuthorizeResponse struct {
	Allowed bool             `json:"allowed"`
	Access  *access.Decision `json:"access"`
}

// CreateFolderRequest is the request body for POST /api/v1/files/folders.
type CreateFolderRequest struct {
	Path string `json:"path"`
}

// RenameRequest is the request body for PUT /api/v1/files.
type RenameRequest struct {
	Path    string `json:"path"`
	NewPath string `json:"new_path"`
}

// Browse handles GET /api/v1/files?path=.
// Returns the access-filtered listing of one logical directory.
func (h *FileHandler) Browse(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.runtime.Store())
	if !ok {
		return
	}

	logicalPath := r.URL.Query().Get("path")
	if logicalPath == "" {
		logicalPath = "/"
	}

	listing, err := h.runtime.Lister().List(r.Context(), caller, logicalPath, h.runtime.ListOptions())
	if err != nil {
		h.writeFileError(w, r, err, "Failed to list directory")
		return
	}

	if !listing.Access.CanAccess {
		writeDenial(w, listing.Access)
		return
	}

	WriteJSONOK(w, listing)
}

// Authorize handles POST /api/v1/files/authorize.
// Returns the full decision for one action on one path. Denials come
// back as 200 with allowed=false so clients can render capabilities.
func (h *FileHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.runtime.Store())
	if !ok {
		return
	}

	var req AuthorizeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	result, err := h.runtime.Authorizer().Authorize(r.Context(), caller, req.Path, access.Action(req.Action), nil)
	if err != nil {
		h.writeFileError(w, r, err, "Authorization failed")
		return
	}

	WriteJSONOK(w, AuthorizeResponse{
		Allowed: result.Allowed,
		Access:  result.Decision,
	})
}

// Download handles GET /api/v1/files/download?path=.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.runtime.Store())
	if !ok {
		return
	}

	logicalPath := r.URL.Query().Get("path")

	result, err := h.runtime.Authorizer().AuthorizeAndResolve(r.Context(), caller, logicalPath, access.ActionDownload, nil)
	if err != nil {
		h.writeFileError(w, r, err, "Authorization failed")
		return
	}
	if !result.Allowed {
		writeDenial(w, result.Decision)
		return
	}

	info, err := os.Stat(result.Resolved.AbsolutePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			NotFound(w, "File not found")
			return
		}
		InternalServerError(w, "Failed to read file")
		return
	}
	if info.IsDir() {
		BadRequest(w, "Cannot download a directory")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(result.Resolved.AbsolutePath)+`"`)
	http.ServeFile(w, r, result.Resolved.AbsolutePath)
}

// Upload handles POST /api/v1/files?path=.
// Writes the request body to the target logical path.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.runtime.Store())
	if !ok {
		return
	}

	logicalPath := r.URL.Query().Get("path")

	result, err := h.runtime.Authorizer().AuthorizeAndResolve(r.Context(), caller, logicalPath, access.ActionUpload, nil)
	if err != nil {
		h.writeFileError(w, r, err, "Authorization failed")
		return
	}
	if !result.Allowed {
		writeDenial(w, result.Decision)
		return
	}

	body := io.Reader(r.Body)
	if h.maxUploadSize > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	file, err := os.Create(result.Resolved.AbsolutePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			NotFound(w, "Parent directory not found")
			return
		}
		InternalServerError(w, "Failed to create file")
		return
	}
	defer file.Close()

	if _, err := io.Copy(file, body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteProblem(w, http.StatusRequestEntityTooLarge,
				"Payload Too Large", "Upload exceeds the configured size limit")
			return
		}
		logger.WarnCtx(r.Context(), "upload write failed",
			"path", logicalPath, "error", err)
		InternalServerError(w, "Failed to write file")
		return
	}

	WriteJSONCreated(w, map[string]string{"path": result.Resolved.RelativePath})
}

// CreateFolder handles POST /api/v1/files/folders.
func (h *FileHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.runtime.Store())
	if !ok {
		return
	}

	var req CreateFolderRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	result, err := h.runtime.Authorizer().AuthorizeAndResolve(r.Context(), caller, req.Path, access.ActionCreateFolder, nil)
	if err != nil {
		h.writeFileError(w, r, err, "Authorization failed")
		return
	}
	if !result.Allowed {
		writeDenial(w, result.Decision)
		return
	}

	if err := os.Mkdir(result.Resolved.AbsolutePath, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			Conflict(w, "Folder already exists")
			return
		}
		if errors.Is(err, fs.ErrNotExist) {
			NotFound(w, "Parent directory not found")
			return
		}
		InternalServerError(w, "Failed to create folder")
		return
	}

	WriteJSONCreated(w, map[string]string{"path": result.Resolved.RelativePath})
}

// Rename handles PUT /api/v1/files.
// Moves or renames a file. Both the source and the destination must be
// writable by the caller.
func (h *FileHandler) Rename(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.runtime.Store())
	if !ok {
		return
	}

	var req RenameRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	source, err := h.runtime.Authorizer().AuthorizeAndResolve(r.Context(), caller, req.Path, access.ActionRename, nil)
	if err != nil {
		h.writeFileError(w, r, err, "Authorization failed")
		return
	}
	if !source.Allowed {
		writeDenial(w, source.Decision)
		return
	}

	dest, err := h.runtime.Authorizer().AuthorizeAndResolve(r.Context(), caller, req.NewPath, access.ActionRename, nil)
	if err != nil {
		h.writeFileError(w, r, err, "Authorization failed")
		return
	}
	if !dest.Allowed {
		writeDenial(w, dest.Decision)
		return
	}

	if err := os.Rename(source.Resolved.AbsolutePath, dest.Resolved.AbsolutePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			NotFound(w, "File not found")
			return
		}
		InternalServerError(w, "Failed to rename file")
		return
	}

	WriteJSONOK(w, map[string]string{"path": dest.Resolved.RelativePath})
}

// Delete handles DELETE /api/v1/files?path=.
// Removes a file or directory tree.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.runtime.Store())
	if !ok {
		return
	}

	logicalPath := r.URL.Query().Get("path")

	result, err := h.runtime.Authorizer().AuthorizeAndResolve(r.Context(), caller, logicalPath, access.ActionDelete, nil)
	if err != nil {
		h.writeFileError(w, r, err, "Authorization failed")
		return
	}
	if !result.Allowed {
		writeDenial(w, result.Decision)
		return
	}

	if _, err := os.Stat(result.Resolved.AbsolutePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			NotFound(w, "File not found")
			return
		}
		InternalServerError(w, "Failed to delete file")
		return
	}

	if err := os.RemoveAll(result.Resolved.AbsolutePath); err != nil {
		InternalServerError(w, "Failed to delete file")
		return
	}

	WriteNoContent(w)
}

// writeDenial maps a policy denial to a 403 carrying the reason.
func writeDenial(w http.ResponseWriter, decision *access.Decision) {
	reason := decision.DenialReason
	if reason == "" {
		reason = "Access denied"
	}
	Forbidden(w, reason)
}

// writeFileError maps facade errors to HTTP status codes. Malformed
// paths and unknown actions are client errors; everything else is a
// collaborator failure.
func (h *FileHandler) writeFileError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, access.ErrInvalidPath):
		BadRequest(w, "Invalid path")
	case errors.Is(err, access.ErrUnknownAction):
		BadRequest(w, "Unknown action")
	case errors.Is(err, fs.ErrNotExist):
		NotFound(w, "Directory not found")
	default:
		logger.ErrorCtx(r.Context(), fallback, "error", err)
		InternalServerError(w, fallback)
	}
}
