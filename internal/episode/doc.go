// Package episode derives season, episode and title hints from bare media
// filenames.
//
// Extraction walks an ordered rule table (SxxEyy, NxM, "Season N Episode M",
// bare E/Ep numbers) and the first rule that matches wins. Extraction never
// fails: unrecognised or empty input yields an Info with every field absent so
// batch previews keep flowing and callers can flag the file as undetected.
//
// The show name is deliberately not inferred here; it belongs to the rename
// job and is supplied by the user.
package episode
