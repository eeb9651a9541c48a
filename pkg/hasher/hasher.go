package hasher

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/dupmover/internal"
	"github.com/moyu-x/dupmover/pkg/logger"
)

// Algorithm 摘要算法名称
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256"
	SHA512 Algorithm = "sha512"
	XXH64  Algorithm = "xxh64"

	Default = SHA256
)

var constructors = map[Algorithm]func() hash.Hash{
	MD5:    md5.New,
	SHA1:   sha1.New,
	SHA256: sha256.New,
	SHA512: sha512.New,
	XXH64:  func() hash.Hash { return xxhash.New() },
}

// bufferPool 复用读取缓冲区
var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, internal.DefaultBufferSize)
		return &b
	},
}

// Supported 返回所有支持的算法名称（已排序）
func Supported() []string {
	names := make([]string, 0, len(constructors))
	for a := range constructors {
		names = append(names, string(a))
	}
	sort.Strings(names)
	return names
}

// ParseAlgorithm 按名称（不区分大小写）解析算法，空字符串返回默认算法
func ParseAlgorithm(name string) (Algorithm, error) {
	if name == "" {
		return Default, nil
	}
	a := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := constructors[a]; !ok {
		return "", fmt.Errorf("unsupported algorithm %q (supported: %s)", name, strings.Join(Supported(), ", "))
	}
	return a, nil
}

func (a Algorithm) New() (hash.Hash, error) {
	ctor, ok := constructors[a]
	if !ok {
		return nil, fmt.Errorf("unsupported algorithm %q", string(a))
	}
	return ctor(), nil
}

// Hash 流式读取整个文件并返回十六进制摘要。
// 读取失败时返回 *internal.HashError。
func Hash(fs afero.Fs, path string, alg Algorithm) (string, error) {
	h, err := alg.New()
	if err != nil {
		return "", err
	}

	file, err := fs.Open(path)
	if err != nil {
		return "", &internal.HashError{Path: path, Err: err}
	}
	defer file.Close()

	bufPtr := bufferPool.Get().(*[]byte)
	defer bufferPool.Put(bufPtr)

	if _, err := io.CopyBuffer(h, file, *bufPtr); err != nil {
		return "", &internal.HashError{Path: path, Err: err}
	}

	sum := hex.EncodeToString(h.Sum(nil))
	logger.Get().Trace().Str("path", path).Str("algorithm", string(alg)).Str("digest", sum).Msg("hashed")
	return sum, nil
}
