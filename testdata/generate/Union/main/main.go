package main

import "fmt"

func main() {
	for _, e := range []Event{Click{X: 3, Y: 4}, Quit{}} {
		s := EventToSignal(e)
		fmt.Println(describe(s), SignalToEvent(s) == e)
	}
}

func describe(s Signal) string {
	switch s := s.(type) {
	case Tap:
		return fmt.Sprintf("tap %d %d", s.X, s.Y)
	case Exit:
		return "exit"
	}
	return "?"
}
