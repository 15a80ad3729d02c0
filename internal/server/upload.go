package server

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Attachment types accepted alongside an order brief
var allowedUploadTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type uploadResponse struct {
	URL string `json:"url"`
}

// handleUpload stores an order attachment and returns its public URL.
// Accepts multipart/form-data with a "file" field, capped at the configured
// size (10MB by default), restricted to PDF, DOC, DOCX, JPG and PNG.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.config.Uploads.MaxSizeBytes

	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		respondError(w, http.StatusBadRequest, "file exceeds the maximum allowed size")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if header.Size > maxSize {
		respondError(w, http.StatusBadRequest, "file exceeds the maximum allowed size")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	expectedType, ok := allowedUploadTypes[ext]
	if !ok {
		respondError(w, http.StatusBadRequest, "file type not allowed (PDF, DOC, DOCX, JPG, PNG)")
		return
	}
	if declared := header.Header.Get("Content-Type"); declared != "" && declared != expectedType {
		respondError(w, http.StatusBadRequest, "file content type does not match its extension")
		return
	}

	uploadDir := filepath.Clean(s.config.Uploads.Dir)
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		respondError(w, http.StatusInternalServerError, "cannot create upload directory")
		return
	}

	nameOnly := sanitizeFilename(strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename)))
	filename := time.Now().Format("20060102_150405") + "_" + nameOnly + ext
	dstPath := filepath.Join(uploadDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cannot save file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		respondError(w, http.StatusInternalServerError, "cannot save file")
		return
	}

	respondJSON(w, http.StatusOK, uploadResponse{URL: "/uploads/" + filename})
}

func sanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "file"
	}
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
