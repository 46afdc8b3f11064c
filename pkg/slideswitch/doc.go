// Package slideswitch implements the interaction core of a slide switch:
// a thumb dragged across a track that settles open or closed.
//
// The package has no UI dependencies. A host owns a Switch on a single
// goroutine, feeds it layout sizes and pointer events, reads Paint to draw
// it, and calls Drain whenever Wake fires so that settle animation frames
// and listener notifications are applied on that goroutine:
//
//	sw := slideswitch.New(slideswitch.DefaultConfig(),
//		slideswitch.WithListener(slideswitch.ListenerFuncs{
//			OnOpen: func() { log.Println("open") },
//		}),
//	)
//	defer sw.Dispose()
//
//	sw.Layout(slideswitch.Dimensions{Width: 280, Height: 140})
//	sw.PointerDown(10)
//	sw.PointerMove(150)
//	sw.PointerUp(150)
//
//	for sw.Settling() {
//		<-sw.Wake()
//		sw.Drain()
//	}
package slideswitch
