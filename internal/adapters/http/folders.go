package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
)

func (rt *Router) handleFolders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rt.listFolders(w, r)
	case http.MethodPost:
		rt.createFolder(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (rt *Router) listFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := rt.folders.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

func (rt *Router) createFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "folder name is required"})
		return
	}

	// Resolve, not insert: creating an existing folder returns it unchanged.
	folder, err := rt.folders.Resolve(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

func (rt *Router) handleFolderByID(w http.ResponseWriter, r *http.Request) {
	id, action := pathSuffix(r.URL.Path, "/v1/folders/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "folder id is required"})
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		rt.getFolder(w, r, id)
	case action == "" && r.Method == http.MethodDelete:
		rt.deleteFolder(w, r, id)
	case action == "files" && r.Method == http.MethodGet:
		rt.listFolderFiles(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (rt *Router) getFolder(w http.ResponseWriter, r *http.Request, id string) {
	folder, err := rt.folders.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

func (rt *Router) listFolderFiles(w http.ResponseWriter, r *http.Request, id string) {
	files, err := rt.files.ListByFolder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (rt *Router) deleteFolder(w http.ResponseWriter, r *http.Request, id string) {
	if err := rt.folders.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
