package users

import (
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const maxPhotoSize = 2 << 20

type Photo struct {
	Data []byte
	MIME string
}

// PhotoStore holds uploaded profile photos by file name.
type PhotoStore struct {
	mu     sync.RWMutex
	photos map[string]Photo
}

func NewPhotoStore() *PhotoStore {
	return &PhotoStore{photos: make(map[string]Photo)}
}

// Save checks that data is an image and returns the name it is stored under.
func (s *PhotoStore) Save(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty photo", ErrInvalidPhoto)
	}
	if len(data) > maxPhotoSize {
		return "", fmt.Errorf("%w: photo is larger than %d bytes", ErrInvalidPhoto, maxPhotoSize)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: photo is %s, not an image", ErrInvalidPhoto, mt.String())
	}

	name := uuid.NewString() + mt.Extension()

	s.mu.Lock()
	s.photos[name] = Photo{Data: data, MIME: mt.String()}
	s.mu.Unlock()

	return name, nil
}

func (s *PhotoStore) Get(name string) (Photo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.photos[name]
	return p, ok
}

// decodePhoto accepts plain base64 or a data URL.
func decodePhoto(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		_, payload, ok := strings.Cut(s, ",")
		if !ok {
			return nil, fmt.Errorf("%w: malformed data URL", ErrInvalidPhoto)
		}
		s = payload
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: photo is not base64: %v", ErrInvalidPhoto, err)
	}
	return data, nil
}
