package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// per-user session record (file, 0600) with AES-GCM obfuscation of the token.
// The token and role are written as one record in a single rename, so a crash
// can never leave one present without the other.

// RoleAdmin is the role marker required for admin screens.
const RoleAdmin = "admin"

type record struct {
	Token string `json:"token"` // base64(ciphertext)
	Role  string `json:"role"`
}

// Store reads and writes the admin session record.
type Store struct {
	path string
}

// NewStore returns a store backed by the given file path. An empty path
// falls back to the user config dir.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// IsAuthorized reports whether a non-empty token and the admin role are both
// present. Any read or decrypt failure counts as unauthorized.
func (s *Store) IsAuthorized() bool {
	token, role, err := s.read()
	if err != nil {
		return false
	}
	return token != "" && role == RoleAdmin
}

// Token returns the stored bearer token, or "" when not logged in.
func (s *Store) Token() string {
	token, _, err := s.read()
	if err != nil {
		return ""
	}
	return token
}

// Login stores token and role together as one atomic record write.
func (s *Store) Login(token, role string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token required")
	}
	path, err := s.filePath()
	if err != nil {
		return err
	}
	ct, err := encrypt([]byte(token))
	if err != nil {
		return err
	}
	rec := record{Token: base64.StdEncoding.EncodeToString(ct), Role: role}
	return save(path, rec)
}

// Logout removes the session record. A missing record is not an error.
func (s *Store) Logout() error {
	path, err := s.filePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) read() (token, role string, err error) {
	path, err := s.filePath()
	if err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", nil
		}
		return "", "", err
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", "", err
	}
	if rec.Token == "" {
		return "", rec.Role, nil
	}
	raw, err := base64.StdEncoding.DecodeString(rec.Token)
	if err != nil {
		return "", "", err
	}
	pt, err := decrypt(raw)
	if err != nil {
		return "", "", err
	}
	return string(pt), rec.Role, nil
}

func (s *Store) filePath() (string, error) {
	path := s.path
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, "tourbook", "session.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil { // restrict directory
		return "", err
	}
	return path, nil
}

func save(path string, rec record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func masterKey() ([]byte, error) {
	user := os.Getenv("USER")
	base := fmt.Sprintf("tourbook-%s-%s", runtime.GOOS, user)
	hash := sha256.Sum256([]byte(base))
	return hash[:], nil
}

func encrypt(plain []byte) ([]byte, error) {
	key, err := masterKey()
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	key, err := masterKey()
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	body := ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}
