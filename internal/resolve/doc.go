// Package resolve turns a requested song into a ranked list of import
// candidates: it derives fallback search queries from the noisy
// "title — artist" pair, filters the remote results down to plausible title
// matches, and orders the survivors by popularity.
package resolve
