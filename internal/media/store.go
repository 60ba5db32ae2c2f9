// Пакет media — дисковое медиа-хранилище загружаемых файлов.
// Файлы раскладываются по папкам (blog-images, events, team) со
// случайными именами и раздаются по публичным URL /media/{folder}/{name}.
package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Store — дисковое медиа-хранилище.
type Store struct {
	// dataDir — корневая директория хранения (CS_MEDIA_DIR)
	dataDir string
	// baseURL — базовый URL сайта для построения публичных ссылок
	baseURL string
	logger  *slog.Logger
}

// Допустимые имена папок: латиница, цифры, дефис, подчёркивание.
var folderNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// NewStore создаёт медиа-хранилище. Проверяет и создаёт корневую
// директорию, если она не существует.
func NewStore(dataDir, baseURL string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию медиа %s: %w", dataDir, err)
	}

	return &Store{
		dataDir: dataDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With(slog.String("component", "media")),
	}, nil
}

// Save сохраняет данные файла под указанной папкой и возвращает
// публичный URL. Имя файла — случайные 16 байт в hex с исходным
// расширением, оригинальное имя не используется.
//
// Паттерн записи: temp файл → запись → fsync → атомарный rename.
// При ошибке temp файл удаляется.
func (s *Store) Save(ctx context.Context, folder, filename, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !folderNameRe.MatchString(folder) {
		return "", fmt.Errorf("недопустимое имя папки: %q", folder)
	}

	dir := filepath.Join(s.dataDir, folder)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("не удалось создать папку %s: %w", folder, err)
	}

	name, err := generateName(filename)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(dir, name)
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("ошибка создания временного файла: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка записи данных: %w", err)
	}

	// fsync для гарантии записи на диск
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	// Атомарный rename
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка атомарного переименования: %w", err)
	}

	url := s.baseURL + "/media/" + folder + "/" + name
	s.logger.Debug("Файл сохранён в медиа-хранилище",
		slog.String("folder", folder),
		slog.String("name", name),
		slog.Int("size", len(data)),
		slog.String("content_type", contentType),
	)

	return url, nil
}

// Handler возвращает HTTP-обработчик раздачи файлов хранилища.
// Монтируется на /media/*.
func (s *Store) Handler() http.Handler {
	return http.StripPrefix("/media/", http.FileServer(http.Dir(s.dataDir)))
}

// generateName генерирует случайное hex-имя файла, сохраняя
// расширение оригинала (в нижнем регистре).
func generateName(originalFilename string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("ошибка генерации имени файла: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalFilename))
	// Расширение берём только из простых случаев, без мусора из имени
	if len(ext) > 8 || strings.ContainsAny(ext, `/\`) {
		ext = ""
	}

	return hex.EncodeToString(buf) + ext, nil
}
