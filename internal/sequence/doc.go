// Package sequence splits numbered file names into their parts, groups them
// into sequences and computes the contiguous renumbering for each sequence.
//
// A file name "weta17.jpg" is read as prefix "weta", number "17" and
// extension "jpg". Only the trailing run of ASCII digits in the stem counts
// as the number, so "shot2_v003.exr" has prefix "shot2_v" and number "003".
// Files sharing prefix and extension form one Sequence.
//
// Nothing in this package touches the filesystem.
package sequence
