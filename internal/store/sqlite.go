package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	rand "math/rand/v2"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lox/keepormull/internal/statistics"
)

// SQLiteStore persists decks and decisions in a SQLite database file.
// Deck list columns hold JSON-encoded string arrays; decisions are one row
// each, indexed by deck, signature and timestamp for the query paths the
// statistics endpoints use.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS decks (
	deck_id     TEXT PRIMARY KEY,
	deck_name   TEXT NOT NULL DEFAULT '',
	main_deck   TEXT NOT NULL,
	sideboard   TEXT NOT NULL,
	total_games INTEGER NOT NULL DEFAULT 0,
	formats     TEXT NOT NULL DEFAULT '[]',
	archetypes  TEXT NOT NULL DEFAULT '[]',
	colors      TEXT NOT NULL DEFAULT '[]',
	tags        TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS hand_decisions (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	deck_id        TEXT NOT NULL,
	hand_signature TEXT NOT NULL,
	hand_display   TEXT NOT NULL,
	mulligan_count INTEGER NOT NULL,
	decision       TEXT NOT NULL CHECK (decision IN ('keep', 'mull')),
	lands_in_hand  INTEGER NOT NULL,
	on_play        INTEGER NOT NULL,
	timestamp      TEXT NOT NULL,
	cards_bottomed TEXT,
	reason         TEXT
);

CREATE INDEX IF NOT EXISTS idx_hand_decisions_deck_id
	ON hand_decisions(deck_id);
CREATE INDEX IF NOT EXISTS idx_hand_decisions_signature
	ON hand_decisions(hand_signature);
CREATE INDEX IF NOT EXISTS idx_hand_decisions_timestamp
	ON hand_decisions(timestamp);
`

// OpenSQLiteStore opens (creating if necessary) the database at path and
// ensures the schema exists.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create db dir: %w", err)
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeList(data string) ([]string, error) {
	if data == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list, nil
}

func (s *SQLiteStore) SaveDeck(deck Deck) error {
	lists := make([]string, 6)
	for i, l := range [][]string{
		deck.MainDeck, deck.Sideboard, deck.Formats,
		deck.Archetypes, deck.Colors, deck.Tags,
	} {
		encoded, err := encodeList(l)
		if err != nil {
			return fmt.Errorf("failed to encode deck lists: %w", err)
		}
		lists[i] = encoded
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO decks
			(deck_id, deck_name, main_deck, sideboard, total_games,
			 formats, archetypes, colors, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		deck.ID, deck.Name, lists[0], lists[1], deck.TotalGames,
		lists[2], lists[3], lists[4], lists[5],
	)
	if err != nil {
		return fmt.Errorf("failed to save deck: %w", err)
	}
	return nil
}

func (s *SQLiteStore) scanDeck(row *sql.Row) (Deck, error) {
	var deck Deck
	var main, side, formats, archetypes, colors, tags string
	err := row.Scan(&deck.ID, &deck.Name, &main, &side, &deck.TotalGames,
		&formats, &archetypes, &colors, &tags)
	if err == sql.ErrNoRows {
		return Deck{}, ErrDeckNotFound
	}
	if err != nil {
		return Deck{}, err
	}
	for dst, src := range map[*[]string]string{
		&deck.MainDeck: main, &deck.Sideboard: side, &deck.Formats: formats,
		&deck.Archetypes: archetypes, &deck.Colors: colors, &deck.Tags: tags,
	} {
		list, err := decodeList(src)
		if err != nil {
			return Deck{}, fmt.Errorf("failed to decode deck lists: %w", err)
		}
		*dst = list
	}
	return deck, nil
}

func (s *SQLiteStore) LoadDeck(id string) (Deck, error) {
	row := s.db.QueryRow(`
		SELECT deck_id, deck_name, main_deck, sideboard, total_games,
		       formats, archetypes, colors, tags
		FROM decks WHERE deck_id = ?`, id)
	return s.scanDeck(row)
}

func (s *SQLiteStore) UpdateDeck(deck Deck) error {
	if _, err := s.LoadDeck(deck.ID); err != nil {
		return err
	}
	return s.SaveDeck(deck)
}

func (s *SQLiteStore) ListDecks(filter Filter) ([]string, error) {
	rows, err := s.db.Query(`SELECT deck_id FROM decks ORDER BY deck_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Metadata filtering happens in Go: the lists are JSON columns and the
	// deck count for a practice tool stays small.
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var matching []string
	for _, id := range ids {
		deck, err := s.LoadDeck(id)
		if err != nil {
			return nil, err
		}
		if filter.Matches(deck) {
			matching = append(matching, id)
		}
	}
	return matching, nil
}

func (s *SQLiteStore) RandomDeck(filter Filter, rng *rand.Rand) (Deck, error) {
	ids, err := s.ListDecks(filter)
	if err != nil {
		return Deck{}, err
	}
	decks := make([]Deck, 0, len(ids))
	for _, id := range ids {
		deck, err := s.LoadDeck(id)
		if err != nil {
			return Deck{}, err
		}
		decks = append(decks, deck)
	}
	return pickRandom(decks, rng)
}

func (s *SQLiteStore) SaveDecision(d statistics.Decision) error {
	display, err := encodeList(d.HandDisplay)
	if err != nil {
		return fmt.Errorf("failed to encode hand display: %w", err)
	}
	var bottomed sql.NullString
	if d.CardsBottomed != nil {
		encoded, err := encodeList(d.CardsBottomed)
		if err != nil {
			return fmt.Errorf("failed to encode bottomed cards: %w", err)
		}
		bottomed = sql.NullString{String: encoded, Valid: true}
	}
	var reason sql.NullString
	if d.Reason != "" {
		reason = sql.NullString{String: d.Reason, Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO hand_decisions
			(deck_id, hand_signature, hand_display, mulligan_count,
			 decision, lands_in_hand, on_play, timestamp, cards_bottomed, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.DeckID, d.HandSignature, display, d.MulliganCount,
		string(d.Verdict), d.LandsInHand, d.OnPlay,
		d.Timestamp.UTC().Format(time.RFC3339Nano), bottomed, reason,
	)
	if err != nil {
		return fmt.Errorf("failed to save decision: %w", err)
	}
	return nil
}

func (s *SQLiteStore) queryDecisions(query string, args ...any) ([]statistics.Decision, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decisions []statistics.Decision
	for rows.Next() {
		var d statistics.Decision
		var display, timestamp string
		var verdict string
		var bottomed, reason sql.NullString
		err := rows.Scan(&d.DeckID, &d.HandSignature, &display, &d.MulliganCount,
			&verdict, &d.LandsInHand, &d.OnPlay, &timestamp, &bottomed, &reason)
		if err != nil {
			return nil, err
		}
		d.Verdict = statistics.Verdict(verdict)
		if d.HandDisplay, err = decodeList(display); err != nil {
			return nil, fmt.Errorf("failed to decode hand display: %w", err)
		}
		if d.Timestamp, err = time.Parse(time.RFC3339Nano, timestamp); err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		if bottomed.Valid {
			if d.CardsBottomed, err = decodeList(bottomed.String); err != nil {
				return nil, fmt.Errorf("failed to decode bottomed cards: %w", err)
			}
		}
		if reason.Valid {
			d.Reason = reason.String
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

const decisionColumns = `deck_id, hand_signature, hand_display, mulligan_count,
	decision, lands_in_hand, on_play, timestamp, cards_bottomed, reason`

func (s *SQLiteStore) DecisionsForDeck(deckID string) ([]statistics.Decision, error) {
	return s.queryDecisions(
		`SELECT `+decisionColumns+` FROM hand_decisions WHERE deck_id = ? ORDER BY id`, deckID)
}

func (s *SQLiteStore) AllDecisions() ([]statistics.Decision, error) {
	return s.queryDecisions(
		`SELECT ` + decisionColumns + ` FROM hand_decisions ORDER BY id`)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
