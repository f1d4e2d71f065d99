package server

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jonathan/cvfiller/internal/extract"
	"github.com/jonathan/cvfiller/internal/parsing"
	"github.com/jonathan/cvfiller/internal/types"
)

// handleParseResume accepts an uploaded resume file, extracts its text and
// returns the structured extraction as-is. Reconciliation into the flat
// record happens client-side so the raw tree stays inspectable.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	filename, text, ok := s.readUploadText(w, r)
	if !ok {
		return
	}

	parsed, err := parsing.ParseResume(r.Context(), s.llm, text)
	if err != nil {
		log.Printf("Error parsing resume %s: %v", filename, err)
		errorResponse(w, http.StatusUnprocessableEntity, fmt.Sprintf("failed to parse resume: %v", err))
		return
	}

	jsonResponse(w, http.StatusOK, types.ParseResponse{
		Status:     types.StatusSuccess,
		SourceFile: filename,
		ParsedData: parsed,
	})
}

// handleResumeAdvice accepts an uploaded resume file and returns an
// advisory analysis of it.
func (s *Server) handleResumeAdvice(w http.ResponseWriter, r *http.Request) {
	filename, text, ok := s.readUploadText(w, r)
	if !ok {
		return
	}

	advice, err := parsing.AnalyzeResume(r.Context(), s.llm, text)
	if err != nil {
		log.Printf("Error analyzing resume %s: %v", filename, err)
		errorResponse(w, http.StatusUnprocessableEntity, fmt.Sprintf("failed to analyze resume: %v", err))
		return
	}

	jsonResponse(w, http.StatusOK, types.AdviceResponse{
		Status:     types.StatusSuccess,
		SourceFile: filename,
		Advice:     advice,
	})
}

// readUploadText pulls the "file" part out of a multipart upload, enforces
// the size and extension limits, and extracts plain text from it. On
// failure it writes the error response and returns ok=false.
func (s *Server) readUploadText(w http.ResponseWriter, r *http.Request) (filename, text string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		errorResponse(w, http.StatusRequestEntityTooLarge, "upload too large or malformed")
		return "", "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "missing file upload")
		return "", "", false
	}
	defer file.Close()

	filename = filepath.Base(header.Filename)
	if !s.cfg.ExtensionAllowed(filename) {
		unsupported := &ErrUnsupportedFile{Filename: filename}
		errorResponse(w, HTTPStatus(unsupported), unsupported.Error())
		return "", "", false
	}

	// Text extraction works on paths, so spool the upload to a temp file.
	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(filename))
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to store upload")
		return "", "", false
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		errorResponse(w, http.StatusInternalServerError, "failed to store upload")
		return "", "", false
	}
	if err := tmp.Close(); err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to store upload")
		return "", "", false
	}

	text, err = extract.File(tmp.Name())
	if err != nil {
		log.Printf("Error extracting text from %s: %v", filename, err)
		errorResponse(w, http.StatusUnprocessableEntity, fmt.Sprintf("failed to extract text: %v", err))
		return "", "", false
	}

	return filename, text, true
}
