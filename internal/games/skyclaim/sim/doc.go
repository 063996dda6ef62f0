// Package sim is the skyclaim simulation: a grid of energy tiles the player
// claims by feeding them from a spaceship's beam, while storms drain energy
// and collectables spawn on newly claimed tiles.
//
// A World owns every component and advances them with Tick. Components talk
// through the typed buses in Events; dispatch is synchronous and in
// subscription order. Spatial overlap is not computed here: a trigger
// collaborator reports enter/exit through the World's entry points.
//
// Everything random draws from per-owner generators seeded from Config, so
// a given config and run seed replays the same round.
package sim
