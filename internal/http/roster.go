package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/oskarlind/sideline/internal/game"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const knownPositions = "GK DF CB LB RB MF CM LM RM AM DM ST LW RW CF"

// PlayerInput is the wire form of a roster entry.
type PlayerInput struct {
	Name      string `json:"name" validate:"required,min=2"`
	Number    string `json:"number,omitempty" validate:"omitempty,numeric,min=1,max=2"`
	Preferred string `json:"preferred,omitempty"`
}

func (in PlayerInput) toPlayer() (*game.Player, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	p := &game.Player{
		Name:      in.Name,
		Number:    in.Number,
		Preferred: in.Preferred,
	}
	for _, pos := range p.PreferredList() {
		if err := validate.Var(pos, "oneof="+knownPositions); err != nil {
			return nil, fmt.Errorf("unknown position %q", pos)
		}
	}
	return p, nil
}

type rosterRequest struct {
	Players []PlayerInput `json:"players" validate:"required,min=1,dive"`
}

func (s *Server) ReplaceRosterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rosterRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		players := make([]*game.Player, 0, len(req.Players))
		for _, in := range req.Players {
			p, err := in.toPlayer()
			if err != nil {
				respondError(w, http.StatusBadRequest, err)
				return
			}
			players = append(players, p)
		}
		if err := s.Session.ReplaceRoster(players); err != nil {
			respondDomainError(w, err)
			return
		}
		log.Info("Roster replaced", "players", len(players))
		respondJSON(w, http.StatusOK, envelope{"success": true, "message": "Roster updated", "count": len(players)})
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, envelope{"success": true, "players": s.Session.Players()})
	}
}

func (s *Server) CreatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in PlayerInput
		if err := decodeBody(r, &in); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		p, err := in.toPlayer()
		if err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.Session.AddPlayer(p); err != nil {
			respondDomainError(w, err)
			return
		}
		log.Info("Player added", "name", p.Name)
		respondMessage(w, "Player added")
	}
}

func (s *Server) DeletePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		if err := s.Session.RemovePlayer(name); err != nil {
			respondDomainError(w, err)
			return
		}
		log.Info("Player removed", "name", name)
		respondMessage(w, "Player removed")
	}
}

type substitutionRequest struct {
	Out string `json:"out" validate:"required"`
	In  string `json:"in" validate:"required"`
}

func (s *Server) SubstitutionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req substitutionRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.Session.Substitute(req.Out, req.In); err != nil {
			log.Warn("Substitution rejected", "out", req.Out, "in", req.In, "error", err)
			respondDomainError(w, err)
			return
		}
		log.Info("Substitution made", "out", req.Out, "in", req.In)
		respondMessage(w, "Substitution made")
	}
}

type assignRequest struct {
	Name     string `json:"name" validate:"required"`
	Position string `json:"position" validate:"required"`
}

func (s *Server) AssignPositionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.Session.AssignPosition(req.Name, req.Position); err != nil {
			respondDomainError(w, err)
			return
		}
		log.Info("Position assigned", "name", req.Name, "position", req.Position)
		respondMessage(w, "Position assigned")
	}
}

func (s *Server) PositionRecommendationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		position := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("position")))
		if position == "" {
			respondError(w, http.StatusBadRequest, fmt.Errorf("position query parameter is required"))
			return
		}
		if err := validate.Var(position, "oneof="+knownPositions); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Errorf("unknown position %q", position))
			return
		}
		candidates := s.Session.RecommendForPosition(position)
		respondJSON(w, http.StatusOK, envelope{"success": true, "position": position, "candidates": candidates})
	}
}

type swapRequest struct {
	A string `json:"a" validate:"required"`
	B string `json:"b" validate:"required"`
}

func (s *Server) SwapPositionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req swapRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.Session.SwapPositions(req.A, req.B); err != nil {
			respondDomainError(w, err)
			return
		}
		log.Info("Positions swapped", "a", req.A, "b", req.B)
		respondMessage(w, "Positions swapped")
	}
}
