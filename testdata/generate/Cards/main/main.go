package main

import "fmt"

func main() {
	for _, s := range []Suit{Clubs, Diamonds, Hearts, Spades} {
		f := SuitToFarbe(s)
		fmt.Println(int(f), FarbeToSuit(f) == s)
	}
}
