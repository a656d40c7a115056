package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"trusthire/server/internal/repository"
)

type contactSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	contacts, err := s.store.ListContacts(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	resp := make([]contactSummary, 0, len(contacts))
	for _, contact := range contacts {
		resp = append(resp, contactSummary{ID: contact.UserID, FullName: contact.FullName})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetConversation returns the transcript oldest-first and marks
// the contact's unread messages as read. Marking is best effort; a
// failure there never fails the read.
func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	contactID := chi.URLParam(r, "contactID")

	msgs, err := s.store.ListConversation(r.Context(), claims.UserID, contactID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.MarkConversationRead(ctx, claims.UserID, contactID); err != nil {
			s.logger.Warn("messages: mark read failed", "error", err)
		}
	}()

	writeJSON(w, http.StatusOK, msgs)
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	contactID := chi.URLParam(r, "contactID")

	if contactID == claims.UserID {
		writeError(w, http.StatusBadRequest, "cannot_message_self")
		return
	}

	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "missing_content")
		return
	}

	if _, err := s.store.GetUserByID(r.Context(), contactID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	msg, err := s.store.CreateMessage(r.Context(), claims.UserID, contactID, req.Content)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	// Open streams, the sender's included, learn about the message
	// through the hub rather than a local echo.
	if err := s.hub.Publish(r.Context(), msg); err != nil {
		s.logger.Warn("messages: publish failed", "message_id", msg.ID, "error", err)
	}

	writeJSON(w, http.StatusCreated, msg)
}

// Redis replays reach a stream roughly in insert order, so a bounded
// recency window is enough to suppress duplicates without the set
// growing for the lifetime of the connection.
const streamSeenLimit = 256

type recentIDs struct {
	limit int
	ids   map[string]struct{}
	order []string
}

func newRecentIDs(limit int) *recentIDs {
	return &recentIDs{limit: limit, ids: make(map[string]struct{})}
}

// Remember reports whether id is new within the window. The oldest id
// is evicted once the window is full.
func (r *recentIDs) Remember(id string) bool {
	if _, dup := r.ids[id]; dup {
		return false
	}
	r.ids[id] = struct{}{}
	r.order = append(r.order, id)
	if len(r.order) > r.limit {
		delete(r.ids, r.order[0])
		r.order = r.order[1:]
	}
	return true
}

// handleStreamConversation pushes new messages of one conversation over
// server-sent events. Each open stream holds exactly one hub
// subscription, released when the client goes away.
func (s *Server) handleStreamConversation(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	contactID := chi.URLParam(r, "contactID")

	if _, err := s.store.GetUserByID(r.Context(), contactID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported")
		return
	}

	sub := s.hub.Subscribe()
	defer s.hub.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	seen := newRecentIDs(streamSeenLimit)
	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-sub.C:
			if !ok {
				return
			}
			if !(msg.SenderID == claims.UserID && msg.ReceiverID == contactID) &&
				!(msg.SenderID == contactID && msg.ReceiverID == claims.UserID) {
				continue
			}
			// The hub can replay a message that arrived both locally
			// and over the wire; emit each id once.
			if !seen.Remember(msg.ID) {
				continue
			}

			payload, err := json.Marshal(msg)
			if err != nil {
				s.logger.Warn("messages: encode event failed", "message_id", msg.ID, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
