package utils

import (
	"runtime"
	"sync"
)

// MultiThread runs f for every integer in [start, end), spread across goroutines. It blocks until
// every call has returned.
//
// 'opsPerThread' is the number of consecutive integers that each goroutine takes at once and
// 'threadsPerCPU' is the number of goroutines created for each CPU. Ranges smaller than
// opsPerThread are run on the calling goroutine.
func MultiThread(start, end int, f func(int), opsPerThread, threadsPerCPU int) {
	if end-start <= opsPerThread || opsPerThread < 1 {
		for i := start; i < end; i++ {
			f(i)
		}
		return
	}

	numThreads := runtime.NumCPU() * threadsPerCPU
	if numThreads < 1 {
		numThreads = 1
	}

	index := start
	var indexMux sync.Mutex

	var wg sync.WaitGroup
	wg.Add(numThreads)
	for thread := 0; thread < numThreads; thread++ {
		go func() {
			defer wg.Done()

			for {
				indexMux.Lock()
				if index >= end {
					indexMux.Unlock()
					return
				}

				i := index
				index += opsPerThread
				indexMux.Unlock()

				e := i + opsPerThread
				if e > end {
					e = end
				}

				for ; i < e; i++ {
					f(i)
				}
			}
		}()
	}

	wg.Wait()
}
