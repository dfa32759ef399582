// Package ffmpeg builds and runs ffmpeg invocations for the container pass:
// argument construction for the hardware and software encode paths, stderr
// capture, and classification of hardware-acceleration failures that warrant
// a software retry.
package ffmpeg
