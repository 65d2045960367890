package api

import (
	"github.com/segmentio/ksuid"
	"github.com/ssargent/polyparser/pkg/archive"
	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/model"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// LayoutDecodeResponse is the data of a successful layout decode.
type LayoutDecodeResponse struct {
	SessionID    string        `json:"session_id"`
	Theme        string        `json:"theme"`
	NewerVersion bool          `json:"newer_version"`
	Warnings     []string      `json:"warnings,omitempty"`
	Layout       *model.Layout `json:"layout"`
}

// SlotDecodeResponse is the data of a successful slot decode.
type SlotDecodeResponse struct {
	SessionID    string          `json:"session_id"`
	LastWrite    string          `json:"last_write"`
	NewerVersion bool            `json:"newer_version"`
	Warnings     []string        `json:"warnings,omitempty"`
	Slot         *model.SaveSlot `json:"slot"`
}

// ArchivePutResponse reports a stored archive entry.
type ArchivePutResponse struct {
	Record   *archive.Record `json:"record"`
	Existing bool            `json:"existing"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port        int
	Bind        string
	APIKey      string
	CORSOrigins []string
	// MaxBodyBytes bounds request bodies; zero selects DefaultMaxBodyBytes.
	MaxBodyBytes int64
	Session      codec.SessionOptions
}

// Archiver is the archive used by the /archive routes.
type Archiver interface {
	Put(raw []byte, meta archive.Meta) (*archive.Record, bool, error)
	Get(id ksuid.KSUID) (*archive.Record, error)
	Raw(id ksuid.KSUID) ([]byte, error)
	List() ([]archive.Record, error)
	Delete(id ksuid.KSUID) error
}
