package httpadapter

import (
	"net/http"
	"strings"
)

func (rt *Router) handleFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	rt.uploadFile(w, r)
}

func (rt *Router) uploadFile(w http.ResponseWriter, r *http.Request) {
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		rt.metrics.RecordUpload(serviceName, err)
		return
	}
	defer file.Close()

	var folderID *string
	if raw := strings.TrimSpace(r.FormValue("folder_id")); raw != "" {
		folderID = &raw
	}

	record, err := rt.uploader.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
		folderID,
	)
	rt.metrics.RecordUpload(serviceName, err)
	if err != nil {
		writeError(w, err)
		return
	}

	rt.metrics.RecordTrigger(serviceName, "upload")
	// 202: the record exists but categorization is still in flight.
	writeJSON(w, http.StatusAccepted, record)
}

func (rt *Router) listUnassigned(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	files, err := rt.files.ListUnassigned(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (rt *Router) handleFileByID(w http.ResponseWriter, r *http.Request) {
	id, action := pathSuffix(r.URL.Path, "/v1/files/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file id is required"})
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		rt.getFile(w, r, id)
	case action == "" && r.Method == http.MethodDelete:
		rt.deleteFile(w, r, id)
	case action == "view-url" && r.Method == http.MethodGet:
		rt.fileViewURL(w, r, id)
	case action == "categorize" && r.Method == http.MethodPost:
		rt.recategorizeFile(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (rt *Router) getFile(w http.ResponseWriter, r *http.Request, id string) {
	record, err := rt.files.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (rt *Router) deleteFile(w http.ResponseWriter, r *http.Request, id string) {
	if err := rt.files.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) fileViewURL(w http.ResponseWriter, r *http.Request, id string) {
	url, err := rt.files.ViewURL(r.Context(), id, rt.presignExpiry)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (rt *Router) recategorizeFile(w http.ResponseWriter, r *http.Request, id string) {
	if err := rt.files.Recategorize(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	rt.metrics.RecordTrigger(serviceName, "recategorize")
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "categorization started", "file_id": id})
}
