package store

import (
	"testing"

	"buzzroom/internal/model"
)

func newGame(roomID string) *model.Game {
	return model.NewGame(roomID, "", &model.Player{ID: "c1", Name: "Alice", IsHost: true, IsActive: true})
}

func TestCreateGetDelete(t *testing.T) {
	s := NewMemoryStore()
	s.Create(newGame("room-1"))

	if s.Len() != 1 {
		t.Errorf("len %d, want 1", s.Len())
	}
	g, ok := s.Get("room-1")
	if !ok || g.RoomID != "room-1" {
		t.Fatalf("get returned %v, %v", g, ok)
	}
	if _, ok := s.Get("room-2"); ok {
		t.Error("unknown room should not resolve")
	}

	s.Delete("room-1")
	if s.Len() != 0 {
		t.Errorf("len %d after delete, want 0", s.Len())
	}
}

func TestConnIndex(t *testing.T) {
	s := NewMemoryStore()
	s.Create(newGame("room-1"))
	s.BindConn("c1", "room-1")

	roomID, ok := s.RoomForConn("c1")
	if !ok || roomID != "room-1" {
		t.Fatalf("RoomForConn = %q, %v", roomID, ok)
	}

	s.UnbindConn("c1")
	if _, ok := s.RoomForConn("c1"); ok {
		t.Error("unbound connection should not resolve")
	}
}

func TestDeleteDropsRoomConns(t *testing.T) {
	s := NewMemoryStore()
	s.Create(newGame("room-1"))
	s.Create(newGame("room-2"))
	s.BindConn("c1", "room-1")
	s.BindConn("c2", "room-1")
	s.BindConn("c3", "room-2")

	s.Delete("room-1")

	if _, ok := s.RoomForConn("c1"); ok {
		t.Error("c1 should be unbound with its room")
	}
	if _, ok := s.RoomForConn("c2"); ok {
		t.Error("c2 should be unbound with its room")
	}
	if roomID, ok := s.RoomForConn("c3"); !ok || roomID != "room-2" {
		t.Errorf("c3 binding lost, got %q, %v", roomID, ok)
	}
}
