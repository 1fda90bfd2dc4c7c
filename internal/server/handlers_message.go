package server

import (
	"net/http"

	"adboard/internal/domain"
)

func (s *Server) handleGetGlobalMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := s.messages.Read()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, msg)
}

func (s *Server) handleDeleteGlobalMessage(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.messages.Delete()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !deleted {
		writeMessage(w, http.StatusOK, domain.MsgNothingToDelete)
		return
	}
	writeMessage(w, http.StatusOK, domain.MsgMessageDeleted)
}
