// Package bench measures how well each sparse representation stores an
// image: conversion and decode time, encoded size, in-memory footprint and
// compression ratio against the source file.
package bench
