// Package game holds the rules of a Texas Hold'em room without any I/O.
//
// # Table
//
// A Table owns the seats, the deck, the board, the pot and the turn pointer
// of one room and moves through the stages
//
//	waiting → pre-flop → flop → turn → river → showdown → waiting
//
// under host control. A fold-out, where one player is left unfolded, ends
// the hand from any betting stage straight back to waiting.
//
// # Betting
//
// Act validates and applies fold, check, call and raise for the expected
// actor only. A call larger than the stack goes all-in instead of failing.
// There are no side pots: the Table tracks a single running pot.
//
// # Bot
//
// DecideBot is the scripted opponent's heuristic. Scheduling and delays
// belong to the caller.
//
// # Hand Evaluation
//
// Evaluator is the hand-ranking collaborator. PokerEvaluator ranks seven-card
// hands with github.com/paulhankin/poker.
package game
