package devserver

import "go.trai.ch/nativedev/internal/adapters/process"

// AddHandle appends h as if a build had spawned it.
func (s *Server) AddHandle(h *process.Handle) {
	s.adopt(h)
}
