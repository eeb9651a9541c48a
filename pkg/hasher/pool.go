package hasher

import (
	"context"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/dupmover/pkg/logger"
)

type Result struct {
	Path   string
	Digest string
	Err    error
}

// Pool 基于 ants 的并发哈希池。每个文件的哈希相互独立，
// 结果按输入顺序返回，与调度无关。
type Pool struct {
	fs        afero.Fs
	algorithm Algorithm
	workers   int
}

func NewPool(fs afero.Fs, alg Algorithm, workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{fs: fs, algorithm: alg, workers: workers}
}

// HashAll 计算所有路径的摘要，onDone 在每个文件完成后调用（可为 nil，需并发安全）。
// ctx 取消后不再提交新任务，等待已提交的任务结束后返回 ctx.Err()。
func (p *Pool) HashAll(ctx context.Context, paths []string, onDone func()) ([]Result, error) {
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	var wg sync.WaitGroup
	pool, err := ants.NewPoolWithFunc(p.workers, func(arg any) {
		defer wg.Done()
		i := arg.(int)
		if err := ctx.Err(); err != nil {
			results[i] = Result{Path: paths[i], Err: err}
			return
		}
		digest, err := Hash(p.fs, paths[i], p.algorithm)
		results[i] = Result{Path: paths[i], Digest: digest, Err: err}
		if onDone != nil {
			onDone()
		}
	})
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	logger.Get().Debug().Int("workers", p.workers).Int("files", len(paths)).Msg("启动哈希计算池")

	for i := range paths {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		if err := pool.Invoke(i); err != nil {
			wg.Done()
			results[i] = Result{Path: paths[i], Err: err}
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
