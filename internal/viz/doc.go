// Package viz is the terminal front end for BubbleLab.
//
// [App] is a Bubble Tea model that owns a playback controller and draws the
// current step as vertical bars next to a scrolling history log. [Screen]
// bridges controller frames into the Bubble Tea event loop.
//
// # Key Bindings
//
//	g        - New random sequence (idle or finished)
//	s/enter  - Start sorting
//	space/p  - Pause / resume
//	←/→      - Step backward / forward while paused
//	x/esc    - Stop and regenerate
//	+/-      - Faster / slower
//	[/]      - Fewer / more bars (idle or finished)
//	t        - Toggle dark/light theme (saved)
//	?        - Full help
//
// Bars are colored by state: comparing pairs and swapping pairs get their own
// colors, and the sorted suffix wins over both.
package viz
