// Package ultimatum simulates the evolution of bargaining behaviour in the
// ultimatum game.
//
// Proposer strategies offer a share of a unit pie and responder strategies
// accept or reject it. Accepted offers pay the proposer 1-offer and the
// responder the offer; rejected offers pay nothing. Every generation the
// population plays a number of rounds, the weakest members are culled and
// the survivors are cloned and mutated back to the original size.
//
// Basic usage:
//
//	// Load configuration
//	config, err := ultimatum.LoadConfig("path/to/config")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	// Create a population (dual or mono, depending on the config)
//	pop, err := ultimatum.New(config)
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//
//	// Run for 100 generations
//	for i := 0; i < 100; i++ {
//		if err := pop.Evolve(config.Population.Rounds); err != nil {
//			log.Fatalf("Error running generation: %v", err)
//		}
//	}
//
//	fmt.Println(pop.Statistics().Means())
package ultimatum
