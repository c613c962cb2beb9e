package server

import (
	"net/http"
	"strings"

	"github.com/lox/keepormull/internal/decklist"
	"github.com/lox/keepormull/internal/sessionid"
	"github.com/lox/keepormull/internal/store"
)

func deckToResponse(deck store.Deck) DeckResponse {
	return DeckResponse{
		DeckID:        deck.ID,
		DeckName:      deck.Name,
		MainDeckSize:  len(deck.MainDeck),
		SideboardSize: len(deck.Sideboard),
		TotalGames:    deck.TotalGames,
		Formats:       deck.Formats,
		Archetypes:    deck.Archetypes,
		Colors:        deck.Colors,
		Tags:          deck.Tags,
	}
}

func filterFromQuery(r *http.Request) store.Filter {
	q := r.URL.Query()
	return store.Filter{
		Format:    q.Get("format"),
		Archetype: q.Get("archetype"),
		Color:     q.Get("color"),
		Tag:       q.Get("tag"),
	}
}

func (s *Server) handleUploadDeck(w http.ResponseWriter, r *http.Request) {
	var req DeckUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.DeckText) == "" {
		s.writeError(w, http.StatusBadRequest, "deck_text is required")
		return
	}

	list := decklist.Parse(req.DeckText)
	if len(list.MainDeck) == 0 {
		s.writeError(w, http.StatusBadRequest, "deck list contains no cards")
		return
	}

	name := req.DeckName
	if name == "" {
		name = "deck_" + s.clock.Now().Format("20060102_150405")
	}
	deck := store.Deck{
		ID:         sessionid.New(),
		Name:       name,
		MainDeck:   list.MainDeck,
		Sideboard:  list.Sideboard,
		Formats:    req.Formats,
		Archetypes: req.Archetypes,
		Colors:     req.Colors,
		Tags:       req.Tags,
	}
	if err := s.store.SaveDeck(deck); err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.logger.Info("Deck uploaded", "deck", deck.ID, "name", name,
		"main", len(deck.MainDeck), "side", len(deck.Sideboard))
	s.writeJSON(w, http.StatusCreated, deckToResponse(deck))
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.ListDecks(filterFromQuery(r))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	resp := DeckListResponse{Decks: []DeckResponse{}}
	for _, id := range ids {
		deck, err := s.store.LoadDeck(id)
		if err != nil {
			continue
		}
		resp.Decks = append(resp.Decks, deckToResponse(deck))
	}
	resp.Total = len(resp.Decks)
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := s.store.LoadDeck(r.PathValue("id"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, deckToResponse(deck))
}

func (s *Server) handleRandomDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := s.store.RandomDeck(filterFromQuery(r), s.rng)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, deckToResponse(deck))
}

func (s *Server) handleUpdateDeck(w http.ResponseWriter, r *http.Request) {
	var req DeckMetadataUpdate
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	deck, err := s.store.LoadDeck(r.PathValue("id"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	// Only fields present in the request change; the deck list itself is
	// immutable once uploaded.
	if req.DeckName != nil {
		deck.Name = *req.DeckName
	}
	if req.Formats != nil {
		deck.Formats = *req.Formats
	}
	if req.Archetypes != nil {
		deck.Archetypes = *req.Archetypes
	}
	if req.Colors != nil {
		deck.Colors = *req.Colors
	}
	if req.Tags != nil {
		deck.Tags = *req.Tags
	}

	if err := s.store.UpdateDeck(deck); err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, deckToResponse(deck))
}
