// Command gocoro-demo round-robins three coroutines sharing one mutex and
// condition variable, printing their interleaved output and the wall-clock
// time the run took.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jamescard/gocoro"
)

type coworkerArgs struct {
	mutex     *gocoro.Mutex
	condition *gocoro.Condition
	funcNum   int
	counter   *int
}

func worker(iterations int) gocoro.Func {
	return func(arg any) any {
		args := arg.(*coworkerArgs)
		funcNum := args.funcNum
		mutex := args.mutex
		condition := args.condition
		self := gocoro.Current()

		self.Lock(mutex)
		self.Wait(condition, mutex)
		fmt.Printf("worker %d: %d signals, %d waiters remaining\n",
			funcNum, condition.NumSignals(), condition.NumWaiters())
		self.Unlock(mutex)

		locked := false
		fmt.Printf("worker %d: starting loop\n", funcNum)
		for *args.counter < iterations {
			if !locked {
				self.Lock(mutex)
				locked = true
			}
			if lastArg := mutex.LastYieldValue(); lastArg != nil {
				if next, ok := lastArg.(*coworkerArgs); ok {
					funcNum = next.funcNum
				}
			}
			*args.counter++
			if *args.counter%4000 == 0 {
				fmt.Printf("worker %d: %d\n", funcNum, *args.counter)
			}
			if *args.counter%2 == 0 {
				if self.Unlock(mutex) == gocoro.Success {
					locked = false
				}
			}
			self.Yield(args.counter)
		}

		if locked {
			self.Unlock(mutex)
		}
		fmt.Printf("worker %d: exiting\n", funcNum)
		return nil
	}
}

func roundRobin(coros []*gocoro.Coroutine) int {
	index := 0
	ran := 0
	for {
		if index == len(coros) {
			index = 0
			ran = 0
		}
		c := coros[index]
		if gocoro.Resumable(c) {
			result := gocoro.Resume(c, nil)
			if result == gocoro.NotResumable {
				fmt.Fprintf(os.Stderr, "coroutine %d was resumable but returned not resumable\n", index)
				return 1
			}
			ran++
		}
		index++
		if ran == 0 {
			return 0
		}
	}
}

func main() {
	iterations := flag.Int("iterations", 20000, "shared counter value each worker races to reach")
	flag.Parse()

	mutex := gocoro.NewMutex(gocoro.MutexPlain)
	condition := gocoro.NewCondition()
	counter := 0

	const numWorkers = 3
	coros := make([]*gocoro.Coroutine, numWorkers)
	for i := range coros {
		coros[i] = gocoro.Create(worker(*iterations))
		coros[i].SetID(gocoro.ID(i))
		gocoro.Resume(coros[i], &coworkerArgs{
			mutex:     mutex,
			condition: condition,
			funcNum:   i + 1,
			counter:   &counter,
		})
	}

	condition.Broadcast()

	start := gocoro.Now()
	status := roundRobin(coros)
	elapsed := gocoro.Now().Sub(start)
	if status != 0 {
		fmt.Fprintln(os.Stderr, "scheduled coroutines completed with one or more errors")
		os.Exit(status)
	}

	fmt.Printf("run took %s\n", elapsed)
}
