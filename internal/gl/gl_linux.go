package gl

const libraryPath = "libGL.so.1"
