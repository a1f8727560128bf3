// Package grip is a retained-mode pointer interaction engine: draggable
// elements, drop targets and touch gestures over a tree of boxes.
//
// Grip owns no window and draws nothing. A host feeds it pointer input
// ([Scene.DispatchMouse], [Scene.DispatchTouch]) and calls [Scene.Update]
// once per frame to fire timers and tweens. Ready-made hosts live in
// grip/ebitenhost (an [Ebitengine] window) and grip/termhost (a terminal).
//
// # Quick start
//
//	scene := grip.NewScene()
//	card := grip.NewBox("card", 20, 20, 96, 64)
//	bin := grip.NewBox("bin", 300, 20, 200, 200)
//	scene.Root().AddChild(card)
//	scene.Root().AddChild(bin)
//
//	grip.NewDraggable(scene, card, grip.DefaultDragOptions())
//	drop := grip.NewDroppable(scene, bin, grip.DefaultDropOptions())
//	drop.OnDrop = func(e grip.DropEvent) {
//		fmt.Println("dropped", e.DroppedElement.Name)
//	}
//
//	ebitenhost.Run(scene, ebitenhost.RunConfig{Title: "cards"})
//
// # Element tree
//
// Every element is a [Node]. A node's parent is its offset parent: X and Y
// place the node's margin box relative to the parent's content origin,
// which sits inside the parent's border and moves with its scroll offset.
// Width and Height are the border-box size. [Node.PageRect] resolves the
// page position on demand; nothing is cached.
//
// Children are hit-tested and painted in ZIndex order, then document
// order. Overflow other than [OverflowVisible] clips hit testing to the
// padding box. Trees can be built from HTML-like markup with [LoadMarkup].
//
// Nodes support a small CSS selector subset (tag, #name, .class,
// [attr=value], descendant and child combinators) through [Node.Matches],
// [Node.Closest], [Node.Query] and [Node.QueryAll].
//
// # Dragging
//
// [Draggable] arms on pointer-down and starts once the pointer has moved
// [DragOptions.Distance] pixels. It then moves a helper (a clone by
// default) inside an optional drag area and publishes itself in its scope.
// While a scope is occupied no other draggable in that scope can start.
//
// [Droppable] targets in the same scope receive over and out as the helper
// crosses them and drop when the pointer is released over them. Targets
// can restrict helpers with an accept selector.
//
// # Touch gestures
//
// [Touch] recognizes tap, double tap, tap-hold, swipe and scroll on an
// element. Touch events are captured by the element under the finger at
// touch-down, so a gesture keeps its element while the finger wanders.
//
// # Events
//
// Behaviours call their typed callbacks (OnDragStart, OnDrop, OnTap, ...)
// and also raise an [InteractionEvent] to every [Scene.OnInteraction]
// observer and to the scene's [EntityStore]. The grip/ecs package bridges
// the store to [Donburi].
//
// # Timers and testing
//
// Tap and hold timers run on the scene's [Clock]. Tests swap in a
// [ManualClock] and script input with [Scene.InjectDrag], [Scene.InjectTap]
// and friends, or replay a JSON script through [LoadTestScript].
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package grip
