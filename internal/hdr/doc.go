// Package hdr produces HDR10-only companion files for Dolby Vision profile 8
// sources. Stripping the DoVi RPU NAL units (type 62) from the HEVC stream
// leaves a valid HDR10 base layer that incompatible players can handle.
package hdr
