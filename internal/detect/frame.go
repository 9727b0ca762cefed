package detect

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// Frame is one captured video frame, still encoded (JPEG or PNG).
type Frame struct {
	Data       []byte
	CapturedAt time.Time
}

// FrameSource abstrai o acesso à câmera: um único método que devolve o
// quadro corrente. Implementations may block until a frame is available or
// ctx is done.
type FrameSource interface {
	Frame(ctx context.Context) (*Frame, error)
}

// ReplaySource serves a recorded frame sequence in order, one frame per
// call. It is the test double for camera access; with Loop set it cycles
// forever, otherwise it returns domain.ErrNoFrame once exhausted.
type ReplaySource struct {
	mu     sync.Mutex
	frames []Frame
	next   int

	Loop bool
}

// NewReplaySource cria uma fonte que reproduz os quadros gravados
func NewReplaySource(frames ...Frame) *ReplaySource {
	return &ReplaySource{frames: frames}
}

func (s *ReplaySource) Frame(ctx context.Context) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.frames) == 0 {
		return nil, domain.ErrNoFrame
	}
	if s.next >= len(s.frames) {
		if !s.Loop {
			return nil, domain.ErrNoFrame
		}
		s.next = 0
	}

	frame := s.frames[s.next]
	s.next++
	return &frame, nil
}

// DirSource serves the newest image file from a directory. It suits capture
// setups that snapshot the camera to disk on their own cadence.
type DirSource struct {
	dir string
}

// NewDirSource cria uma fonte que lê snapshots de um diretório
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) Frame(ctx context.Context) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read frame dir: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var candidates []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{
			path:    filepath.Join(s.dir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	if len(candidates) == 0 {
		return nil, domain.ErrNoFrame
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime.After(candidates[j].modTime)
	})

	data, err := os.ReadFile(candidates[0].path)
	if err != nil {
		return nil, fmt.Errorf("read frame %s: %w", candidates[0].path, err)
	}

	return &Frame{Data: data, CapturedAt: candidates[0].modTime}, nil
}
