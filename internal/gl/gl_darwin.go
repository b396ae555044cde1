package gl

const libraryPath = "/System/Library/Frameworks/OpenGL.framework/OpenGL"
