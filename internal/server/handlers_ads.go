package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"time"

	"adboard/internal/ads"
	"adboard/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
)

// createAdResponse is returned after a successful submission
type createAdResponse struct {
	Message  string `json:"message"`
	ID       int64  `json:"id"`
	FilePath string `json:"file_path"`
}

// handleListAds returns every stored ad
func (s *Server) handleListAds(w http.ResponseWriter, r *http.Request) {
	list, err := s.ads.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// formEnvelope is the body allowance on top of the file limit for
// multipart boundaries, part headers and the text fields
const formEnvelope = 1 << 20

func writeTooLarge(w http.ResponseWriter) {
	writeErrorMessage(w, http.StatusRequestEntityTooLarge, http.StatusText(http.StatusRequestEntityTooLarge))
}

// handleCreateAd accepts a multipart form (with optional "file") or a JSON body
func (s *Server) handleCreateAd(w http.ResponseWriter, r *http.Request) {
	maxBody := s.config.MaxUploadBytes() + formEnvelope
	if r.ContentLength > maxBody {
		writeTooLarge(w)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	var (
		in     ads.NewAd
		upload *ads.Upload
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, r, err)
				return
			}
			writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	} else {
		if err := r.ParseMultipartForm(s.config.MaxUploadBytes()); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, r, err)
				return
			}
			writeErrorMessage(w, http.StatusBadRequest, "invalid form data")
			return
		}
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}

		in = ads.NewAd{
			Description: r.FormValue("description"),
			SocialID:    r.FormValue("socialId"),
			Category:    r.FormValue("category"),
		}

		file, header, err := r.FormFile("file")
		switch {
		case err == nil:
			defer file.Close()
			if header.Size > s.config.MaxUploadBytes() {
				writeTooLarge(w)
				return
			}
			upload = &ads.Upload{Filename: header.Filename, Content: file}
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			// No attachment
		default:
			writeErrorMessage(w, http.StatusBadRequest, "invalid file upload")
			return
		}
	}

	ad, err := s.ads.Create(r.Context(), in, upload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createAdResponse{
		Message:  domain.MsgAdCreated,
		ID:       ad.ID,
		FilePath: ad.FilePath,
	})
}

// handleServeMedia streams an uploaded file
func (s *Server) handleServeMedia(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	f, err := s.media.Open(name)
	if errors.Is(err, domain.ErrNotFound) {
		writeErrorMessage(w, http.StatusNotFound, domain.MsgFileNotFound)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer f.Close()

	// Lift the server write timeout for long video streams. Not every
	// wrapped writer supports it, in which case the timeout stays.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	info, err := f.Stat()
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// handleAdQR renders a QR code of the ad's contact handle
func (s *Server) handleAdQR(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ad, err := s.ads.Get(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeErrorMessage(w, http.StatusNotFound, domain.MsgAdNotFound)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	png, err := qrcode.Encode(ad.SocialID, qrcode.Medium, 256)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

// handleLikeAd adds a like. Unknown ids still succeed.
func (s *Server) handleLikeAd(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		// Beyond int64, so no ad can have it
		writeMessage(w, http.StatusOK, domain.MsgLikeRecorded)
		return
	}
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := s.ads.Like(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, domain.MsgLikeRecorded)
}
