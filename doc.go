// Package fastqcpipe holds the small file helpers shared by the lane merge
// pipeline: opening local or gs:// sources, sniffing compression, detecting
// sample list delimiters and expanding home-relative paths.
package fastqcpipe
