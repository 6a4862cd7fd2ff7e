// Package pipeline implements the Textile-to-HTML rendering pipeline.
//
// Render runs the core stages over one document:
//   - literal <pre> blocks are replaced by collision-free placeholder tokens
//   - headings, blockquotes and list runs are rewritten in one line scan
//   - inline rules (links, images, typography, phrase modifiers) run in a
//     fixed order, outside HTML tags
//   - remaining segments are wrapped in paragraphs
//   - placeholders are replaced by the original blocks
//
// The package also provides the optional stages applied around a rendered
// fragment by the root textdown package: chroma syntax highlighting of
// tagged code blocks and wrapping into a standalone HTML5 document with
// injected CSS.
package pipeline
